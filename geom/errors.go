// SPDX-License-Identifier: MIT

package geom

import "errors"

var (
	// ErrNoPoints is returned when an operation needs at least one city.
	ErrNoPoints = errors.New("geom: no points")

	// ErrNonFinite signals a NaN or ±Inf coordinate.
	ErrNonFinite = errors.New("geom: non-finite coordinate")

	// ErrOutOfRange indicates a city index outside [0, n).
	ErrOutOfRange = errors.New("geom: index out of range")
)
