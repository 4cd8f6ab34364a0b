// SPDX-License-Identifier: MIT

// Package operators - edge recombination crossover (ERX).
//
// ERX builds a child that keeps as many parental adjacencies ("edges") as
// possible. For every city it records the union of its neighbours in both
// parents (successor and predecessor, wrapping around the ends), then grows
// the child greedily, always stepping to the live neighbour that has the
// fewest live neighbours of its own.
//
// Scratch layout (EdgeTable): one row of 5 ints per city in a flat
// row-major buffer, offset city*5:
//
//	slot 0: successor in parent1     slot 2: predecessor in parent1
//	slot 1: successor in parent2     slot 3: predecessor in parent2
//	slot 4: live neighbour count
//
// A value of -1 marks an empty (duplicate or removed) slot.
//
// The neighbour relation is symmetric (b is a neighbour of a iff a is a
// neighbour of b), so removing a placed city only needs to touch the rows
// of its own neighbours instead of scanning the whole table.
package operators

import (
	"math"
	"math/rand"
	"slices"
)

const (
	edgeSlots  = 4             // neighbour slots per city
	edgeStride = edgeSlots + 1 // + live count
	edgeCount  = edgeSlots     // offset of the count within a row
	emptySlot  = -1
)

// EdgeTable is the ERX adjacency scratch for tours of one fixed length.
// It is reset on every Fill; it is not safe for concurrent use.
type EdgeTable struct {
	n    int
	data []int // len == n*edgeStride
}

// NewEdgeTable allocates a table for tours of length n.
func NewEdgeTable(n int) *EdgeTable {
	if n < 0 {
		n = 0
	}

	return &EdgeTable{n: n, data: make([]int, n*edgeStride)}
}

// Len returns the tour length the table was sized for.
func (t *EdgeTable) Len() int { return t.n }

// Fill loads the neighbour union of both parents and collapses duplicates.
// Parents must be permutations of 0..Len()-1.
//
// Complexity: O(n).
func (t *EdgeTable) Fill(parent1, parent2 []int) {
	n := t.n

	var (
		i, next, prev int
		row1, row2    int
	)
	for i = 0; i < n; i++ {
		next = i + 1
		if next >= n {
			next -= n
		}
		prev = i - 1
		if prev < 0 {
			prev += n
		}
		row1 = parent1[i] * edgeStride
		row2 = parent2[i] * edgeStride
		t.data[row1+0] = parent1[next]
		t.data[row2+1] = parent2[next]
		t.data[row1+2] = parent1[prev]
		t.data[row2+3] = parent2[prev]
		t.data[row1+edgeCount] = edgeSlots
	}

	t.dedupe()
}

// dedupe marks repeated neighbours within each row as empty.
func (t *EdgeTable) dedupe() {
	var (
		city, j, c, row int
		v               int
	)
	for city = 0; city < t.n; city++ {
		row = city * edgeStride
		for j = 0; j < edgeSlots; j++ {
			v = t.data[row+j]
			if v == emptySlot {
				continue
			}
			for c = j + 1; c < edgeSlots; c++ {
				if t.data[row+c] == v {
					t.data[row+c] = emptySlot
					t.data[row+edgeCount]--
				}
			}
		}
	}
}

// Count returns the number of live neighbours of city.
func (t *EdgeTable) Count(city int) int {
	return t.data[city*edgeStride+edgeCount]
}

// Neighbors returns the live neighbours of city in slot order.
func (t *EdgeTable) Neighbors(city int) []int {
	out := make([]int, 0, edgeSlots)
	row := city * edgeStride

	var j int
	for j = 0; j < edgeSlots; j++ {
		if v := t.data[row+j]; v != emptySlot {
			out = append(out, v)
		}
	}

	return out
}

// remove deletes city from the neighbour lists of all its neighbours.
func (t *EdgeTable) remove(city int) {
	var (
		own [edgeSlots]int
		row int
		j   int
		k   int
	)
	// Copy first: for n == 1 the city is its own neighbour and its row changes
	// while we walk it.
	copy(own[:], t.data[city*edgeStride:city*edgeStride+edgeSlots])
	for j = 0; j < edgeSlots; j++ {
		if own[j] == emptySlot {
			continue
		}
		row = own[j] * edgeStride
		for k = 0; k < edgeSlots; k++ {
			if t.data[row+k] == city {
				t.data[row+k] = emptySlot
				t.data[row+edgeCount]--
			}
		}
	}
}

// fewest returns the live neighbour of city with the fewest live neighbours,
// choosing uniformly at random among ties.
func (t *EdgeTable) fewest(city int, rng *rand.Rand) int {
	var (
		tied  [edgeSlots]int
		nTied int
		best  = math.MaxInt
		row   = city * edgeStride
		j     int
		v, c  int
	)
	for j = 0; j < edgeSlots; j++ {
		v = t.data[row+j]
		if v == emptySlot {
			continue
		}
		c = t.Count(v)
		switch {
		case c < best:
			best = c
			tied[0] = v
			nTied = 1
		case c == best:
			tied[nTied] = v
			nTied++
		}
	}
	if nTied == 1 {
		return tied[0]
	}

	return tied[rng.Intn(nTied)]
}

// EdgeRecombination runs ERX with a freshly allocated EdgeTable.
// Use EdgeRecombiner to reuse the scratch across calls.
//
// Contract: parents are permutations of 0..n-1 of the same length n > 0.
// Errors: ErrEmptyParent, ErrLengthMismatch, ErrNilRand.
//
// Complexity: O(n) time and space.
func EdgeRecombination(parent1, parent2 []int, rng *rand.Rand) ([]int, error) {
	if err := checkEdgeParents(parent1, parent2); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	return edgeRecombine(NewEdgeTable(len(parent1)), make([]bool, len(parent1)), parent1, parent2, rng), nil
}

func checkEdgeParents(parent1, parent2 []int) error {
	if len(parent1) == 0 || len(parent2) == 0 {
		return ErrEmptyParent
	}
	if len(parent1) != len(parent2) {
		return ErrLengthMismatch
	}

	return nil
}

// edgeRecombine is the ERX core over caller-owned scratch.
func edgeRecombine(table *EdgeTable, placed []bool, parent1, parent2 []int, rng *rand.Rand) []int {
	n := len(parent1)

	// Identical parents offer no competing edges: the child is the parent.
	if slices.Equal(parent1, parent2) {
		return slices.Clone(parent1)
	}

	table.Fill(parent1, parent2)
	clear(placed)

	child := make([]int, n)
	city := parent1[0]

	var i int
	for i = 0; i < n-1; i++ {
		child[i] = city
		placed[city] = true
		table.remove(city)

		if table.Count(city) > 0 {
			city = table.fewest(city, rng)
		} else {
			city = randomUnplaced(placed, rng)
		}
	}
	child[n-1] = city

	return child
}

// randomUnplaced draws uniformly among cities not yet in the child.
// At least one such city exists whenever it is called.
func randomUnplaced(placed []bool, rng *rand.Rand) int {
	var c int
	for {
		c = rng.Intn(len(placed))
		if !placed[c] {
			return c
		}
	}
}
