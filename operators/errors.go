// SPDX-License-Identifier: MIT

package operators

import "errors"

// Sentinel errors. Match with errors.Is; callers may wrap them with context.
var (
	// ErrLengthMismatch is returned when two parents differ in length.
	ErrLengthMismatch = errors.New("operators: parent length mismatch")

	// ErrEmptyParent is returned when recombination receives a zero-length tour.
	ErrEmptyParent = errors.New("operators: empty parent")

	// ErrSegmentOutOfRange signals start/end bounds violating 0 <= start <= end <= len.
	ErrSegmentOutOfRange = errors.New("operators: segment out of range")

	// ErrIndexOutOfRange signals a move index outside the slice.
	ErrIndexOutOfRange = errors.New("operators: index out of range")

	// ErrRelocateOverlap is returned when a relocation target lies strictly
	// inside the block being moved.
	ErrRelocateOverlap = errors.New("operators: relocate destination inside source block")

	// ErrNotPermutation signals a slice that is not a permutation of 0..n-1.
	ErrNotPermutation = errors.New("operators: not a permutation")

	// ErrUnknownKind is returned for an unrecognized strategy selector.
	ErrUnknownKind = errors.New("operators: unknown strategy kind")

	// ErrNilRand is returned when a strategy is built without a random source.
	ErrNilRand = errors.New("operators: nil random source")

	// ErrNegativeTolerance is returned for a TwoOptOptions.Eps below zero.
	ErrNegativeTolerance = errors.New("operators: negative 2-opt tolerance")
)
