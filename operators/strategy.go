// SPDX-License-Identifier: MIT

// Package operators - pluggable recombination and mutation strategies.
//
// The engine only ever sees the Recombiner and Mutator interfaces. Concrete
// strategies bind a random source (and, for ERX, an owned EdgeTable) so the
// engine can hand them plain parent slices.
//
// Tagged selectors:
//
//	RecombinationKind: EdgeRecombinationKind (default), OrderCrossoverKind
//	MutationKind:      InvertKind (default), SwapKind, RotateKind, RelocateKind
//
// Both selectors implement encoding.TextMarshaler/TextUnmarshaler so they
// round-trip through flags and YAML.
package operators

import (
	"fmt"
	"math/rand"
	"strings"
)

// Recombiner produces one child from two parents. Parents are read-only.
type Recombiner interface {
	Recombine(parent1, parent2 []int) ([]int, error)
}

// Mutator rearranges a tour in place; it must keep it a permutation.
type Mutator interface {
	Mutate(tour []int) error
}

// RecombinationKind selects a Recombiner.
type RecombinationKind int

const (
	// EdgeRecombinationKind is ERX, the primary operator.
	EdgeRecombinationKind RecombinationKind = iota
	// OrderCrossoverKind is OX-1 with a uniformly drawn segment.
	OrderCrossoverKind
)

var recombinationNames = map[RecombinationKind]string{
	EdgeRecombinationKind: "erx",
	OrderCrossoverKind:    "ox",
}

// String implements fmt.Stringer.
func (k RecombinationKind) String() string {
	if s, ok := recombinationNames[k]; ok {
		return s
	}

	return fmt.Sprintf("RecombinationKind(%d)", int(k))
}

// ParseRecombination maps a name to a RecombinationKind. Accepted names
// (case-insensitive): erx, edge, edge-recombination, ox, ox1, order,
// order-crossover.
func ParseRecombination(s string) (RecombinationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "erx", "edge", "edge-recombination":
		return EdgeRecombinationKind, nil
	case "ox", "ox1", "ox-1", "order", "order-crossover":
		return OrderCrossoverKind, nil
	}

	return 0, fmt.Errorf("recombination %q: %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k RecombinationKind) MarshalText() ([]byte, error) {
	if _, ok := recombinationNames[k]; !ok {
		return nil, fmt.Errorf("%v: %w", k, ErrUnknownKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RecombinationKind) UnmarshalText(b []byte) error {
	v, err := ParseRecombination(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// MutationKind selects a Mutator.
type MutationKind int

const (
	// InvertKind reverses a random closed segment (2-opt move), the primary move.
	InvertKind MutationKind = iota
	// SwapKind exchanges two random positions.
	SwapKind
	// RotateKind cyclically shifts a random segment by a random distance.
	RotateKind
	// RelocateKind moves a random block to a random position outside it.
	RelocateKind
)

var mutationNames = map[MutationKind]string{
	InvertKind:   "invert",
	SwapKind:     "swap",
	RotateKind:   "rotate",
	RelocateKind: "relocate",
}

// String implements fmt.Stringer.
func (k MutationKind) String() string {
	if s, ok := mutationNames[k]; ok {
		return s
	}

	return fmt.Sprintf("MutationKind(%d)", int(k))
}

// ParseMutation maps a name (case-insensitive) to a MutationKind.
func ParseMutation(s string) (MutationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invert", "inversion", "reverse":
		return InvertKind, nil
	case "swap":
		return SwapKind, nil
	case "rotate", "rotation":
		return RotateKind, nil
	case "relocate", "move", "insert":
		return RelocateKind, nil
	}

	return 0, fmt.Errorf("mutation %q: %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k MutationKind) MarshalText() ([]byte, error) {
	if _, ok := mutationNames[k]; !ok {
		return nil, fmt.Errorf("%v: %w", k, ErrUnknownKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MutationKind) UnmarshalText(b []byte) error {
	v, err := ParseMutation(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// NewRecombiner builds the strategy for kind. n is the tour length, used to
// size ERX scratch.
func NewRecombiner(kind RecombinationKind, n int, rng *rand.Rand) (Recombiner, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	switch kind {
	case EdgeRecombinationKind:
		return NewEdgeRecombiner(n, rng), nil
	case OrderCrossoverKind:
		return NewOrderCrossover(rng), nil
	}

	return nil, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
}

// NewMutator builds the strategy for kind.
func NewMutator(kind MutationKind, rng *rand.Rand) (Mutator, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	switch kind {
	case InvertKind:
		return NewInvertMutator(rng), nil
	case SwapKind:
		return NewSwapMutator(rng), nil
	case RotateKind:
		return NewRotateMutator(rng), nil
	case RelocateKind:
		return NewRelocateMutator(rng), nil
	}

	return nil, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
}

// ---------- recombiners ----------

// EdgeRecombiner is ERX with instance-owned scratch. Not goroutine-safe.
type EdgeRecombiner struct {
	rng    *rand.Rand
	table  *EdgeTable
	placed []bool
}

// NewEdgeRecombiner sizes the scratch for tours of length n. Calls with a
// different length transparently resize it.
func NewEdgeRecombiner(n int, rng *rand.Rand) *EdgeRecombiner {
	r := &EdgeRecombiner{rng: rng}
	r.resize(n)

	return r
}

func (r *EdgeRecombiner) resize(n int) {
	r.table = NewEdgeTable(n)
	r.placed = make([]bool, n)
}

// Recombine implements Recombiner.
func (r *EdgeRecombiner) Recombine(parent1, parent2 []int) ([]int, error) {
	if err := checkEdgeParents(parent1, parent2); err != nil {
		return nil, err
	}
	if r.table.Len() != len(parent1) {
		r.resize(len(parent1))
	}

	return edgeRecombine(r.table, r.placed, parent1, parent2, r.rng), nil
}

// OrderCrossoverRecombiner is OX-1 with a segment drawn per call: two
// positions in [0, n] independently, normalized to start <= end.
type OrderCrossoverRecombiner struct {
	rng *rand.Rand
}

// NewOrderCrossover returns an OX-1 strategy.
func NewOrderCrossover(rng *rand.Rand) *OrderCrossoverRecombiner {
	return &OrderCrossoverRecombiner{rng: rng}
}

// Recombine implements Recombiner.
func (r *OrderCrossoverRecombiner) Recombine(parent1, parent2 []int) ([]int, error) {
	if len(parent1) == 0 {
		return nil, ErrEmptyParent
	}
	start, end := drawBounds(r.rng, len(parent1)+1)

	return OrderCrossover(parent1, parent2, start, end)
}

// ---------- mutators ----------

// InvertMutator reverses the closed segment between two independent random
// positions (coinciding positions are a no-op).
type InvertMutator struct{ rng *rand.Rand }

// NewInvertMutator returns the segment-inversion move.
func NewInvertMutator(rng *rand.Rand) *InvertMutator { return &InvertMutator{rng: rng} }

// Mutate implements Mutator.
func (m *InvertMutator) Mutate(tour []int) error {
	if len(tour) == 0 {
		return nil
	}
	i := m.rng.Intn(len(tour))
	j := m.rng.Intn(len(tour))
	Invert(tour, i, j)

	return nil
}

// SwapMutator exchanges two independent random positions.
type SwapMutator struct{ rng *rand.Rand }

func NewSwapMutator(rng *rand.Rand) *SwapMutator { return &SwapMutator{rng: rng} }

// Mutate implements Mutator.
func (m *SwapMutator) Mutate(tour []int) error {
	if len(tour) == 0 {
		return nil
	}
	Swap(tour, m.rng.Intn(len(tour)), m.rng.Intn(len(tour)))

	return nil
}

// RotateMutator rotates a random closed segment by a random distance.
type RotateMutator struct{ rng *rand.Rand }

func NewRotateMutator(rng *rand.Rand) *RotateMutator { return &RotateMutator{rng: rng} }

// Mutate implements Mutator.
func (m *RotateMutator) Mutate(tour []int) error {
	if len(tour) == 0 {
		return nil
	}
	lo, hi := drawBounds(m.rng, len(tour))
	seg := tour[lo : hi+1]
	Rotate(seg, m.rng.Intn(len(seg)))

	return nil
}

// RelocateMutator moves a random block [lo, hi) to a uniformly chosen legal
// destination in [0, lo] ∪ [hi, n].
type RelocateMutator struct{ rng *rand.Rand }

func NewRelocateMutator(rng *rand.Rand) *RelocateMutator { return &RelocateMutator{rng: rng} }

// Mutate implements Mutator.
func (m *RelocateMutator) Mutate(tour []int) error {
	n := len(tour)
	if n == 0 {
		return nil
	}
	lo, hi := drawBounds(m.rng, n+1)
	k := m.rng.Intn((lo + 1) + (n - hi + 1))
	dest := k
	if k > lo {
		dest = hi + (k - lo - 1)
	}

	return Relocate(tour, lo, hi, dest)
}

// drawBounds draws two independent positions in [0, limit) and returns them
// ordered.
func drawBounds(rng *rand.Rand, limit int) (int, int) {
	a := rng.Intn(limit)
	b := rng.Intn(limit)
	if a > b {
		a, b = b, a
	}

	return a, b
}
