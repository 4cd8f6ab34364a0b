package operators_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/evotsp/operators"
	"github.com/stretchr/testify/require"
)

// Repeat runs fn n times. Useful for determinism/stability checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// -----------------------------------------------------------------------------
// Order crossover (OX-1)
// -----------------------------------------------------------------------------

func TestOrderCrossover_WorkedExample(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4, 5, 6, 7}
	p2 := []int{7, 6, 5, 4, 3, 2, 1, 0}

	child, err := operators.OrderCrossover(p1, p2, 2, 5)
	require.NoError(t, err)
	// Segment {2,3,4} stays in place; 7,6,5,1,0 fill positions 0,1,5,6,7.
	require.Equal(t, []int{7, 6, 2, 3, 4, 5, 1, 0}, child)
}

func TestOrderCrossover_SegmentAtEdges(t *testing.T) {
	p1 := []int{3, 1, 4, 0, 2}
	p2 := []int{0, 1, 2, 3, 4}

	// start == 0: cursor jumps straight past the segment.
	child, err := operators.OrderCrossover(p1, p2, 0, 2)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 0, 2, 4}, child)

	// end == len: the tail is the segment.
	child, err = operators.OrderCrossover(p1, p2, 3, 5)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 4, 0, 2}, child)

	// Empty segment: the child is parent2.
	child, err = operators.OrderCrossover(p1, p2, 2, 2)
	require.NoError(t, err)
	require.Equal(t, p2, child)

	// Full segment: the child is parent1.
	child, err = operators.OrderCrossover(p1, p2, 0, 5)
	require.NoError(t, err)
	require.Equal(t, p1, child)
}

func TestOrderCrossover_RandomPermutationsKeepSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 30

	var trial int
	for trial = 0; trial < 200; trial++ {
		p1 := operators.RandomPermutation(n, rng)
		p2 := operators.RandomPermutation(n, rng)
		s, e := rng.Intn(n+1), rng.Intn(n+1)
		if s > e {
			s, e = e, s
		}

		child, err := operators.OrderCrossover(p1, p2, s, e)
		require.NoError(t, err)
		require.NoError(t, operators.ValidatePermutation(child, n))
		require.Equal(t, p1[s:e], child[s:e], "segment [%d,%d)", s, e)
	}
}

func TestOrderCrossover_IdenticalParents(t *testing.T) {
	p := []int{4, 2, 0, 3, 1}
	child, err := operators.OrderCrossover(p, p, 1, 3)
	require.NoError(t, err)
	require.Equal(t, p, child)
}

func TestOrderCrossover_Errors(t *testing.T) {
	_, err := operators.OrderCrossover([]int{0, 1}, []int{0, 1, 2}, 0, 1)
	require.ErrorIs(t, err, operators.ErrLengthMismatch)

	_, err = operators.OrderCrossover([]int{0, 1, 2}, []int{2, 1, 0}, 2, 1)
	require.ErrorIs(t, err, operators.ErrSegmentOutOfRange)

	_, err = operators.OrderCrossover([]int{0, 1, 2}, []int{2, 1, 0}, 0, 4)
	require.ErrorIs(t, err, operators.ErrSegmentOutOfRange)

	_, err = operators.OrderCrossover([]int{0, 1, 2}, []int{2, 2, 1}, 0, 1)
	require.ErrorIs(t, err, operators.ErrNotPermutation)

	_, err = operators.OrderCrossover([]int{0, 1, 5}, []int{2, 1, 0}, 0, 3)
	require.ErrorIs(t, err, operators.ErrNotPermutation)
}

// -----------------------------------------------------------------------------
// Edge recombination (ERX)
// -----------------------------------------------------------------------------

func TestEdgeTable_FillCollapsesDuplicates(t *testing.T) {
	table := operators.NewEdgeTable(5)
	// Same cycle in opposite directions: every city has exactly two neighbours.
	table.Fill([]int{0, 1, 2, 3, 4}, []int{4, 3, 2, 1, 0})

	var c int
	for c = 0; c < 5; c++ {
		require.Equal(t, 2, table.Count(c), "city %d", c)
		require.Len(t, table.Neighbors(c), 2)
	}
	require.ElementsMatch(t, []int{1, 4}, table.Neighbors(0))
	require.ElementsMatch(t, []int{1, 3}, table.Neighbors(2))

	// Distinct cycles: city 0 gets its full four neighbours.
	table.Fill([]int{0, 1, 2, 3, 4}, []int{0, 2, 4, 1, 3})
	require.Equal(t, 4, table.Count(0))
	require.ElementsMatch(t, []int{1, 2, 3, 4}, table.Neighbors(0))
	// City 1: {0, 2} from parent1 and {4, 3} from parent2.
	require.ElementsMatch(t, []int{0, 2, 3, 4}, table.Neighbors(1))
}

func TestEdgeRecombination_IdenticalParents(t *testing.T) {
	var (
		rng  = rand.New(rand.NewSource(5))
		erx  = rand.New(rand.NewSource(6))
		twin = rand.New(rand.NewSource(6))
	)
	Repeat(t, 20, func(t *testing.T) {
		p := operators.RandomPermutation(12, rng)
		child, err := operators.EdgeRecombination(p, p, erx)
		require.NoError(t, err)
		require.Equal(t, p, child, "never the reversed tour")
		require.Equal(t, twin.Int63(), erx.Int63(), "no random draw is spent")

		// The result is a fresh slice.
		child[0] = -1
		require.NotEqual(t, -1, p[0])
	})
}

func TestEdgeRecombination_ProducesPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for _, n := range []int{1, 2, 3, 4, 7, 16, 50} {
		var trial int
		for trial = 0; trial < 50; trial++ {
			p1 := operators.RandomPermutation(n, rng)
			p2 := operators.RandomPermutation(n, rng)

			child, err := operators.EdgeRecombination(p1, p2, rng)
			require.NoError(t, err)
			require.NoError(t, operators.ValidatePermutation(child, n), "n=%d child=%v", n, child)
			require.Equal(t, p1[0], child[0], "child starts at parent1[0]")
		}
	}
}

// TestEdgeRecombination_PrefersParentalEdges checks that when the parents are
// the same cycle in opposite directions, the child walks that cycle.
func TestEdgeRecombination_PrefersParentalEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	p1 := []int{0, 1, 2, 3, 4, 5, 6, 7}
	p2 := []int{7, 6, 5, 4, 3, 2, 1, 0}

	Repeat(t, 20, func(t *testing.T) {
		child, err := operators.EdgeRecombination(p1, p2, rng)
		require.NoError(t, err)

		// Every consecutive pair must be adjacent on the 8-cycle.
		var i int
		for i = 0; i+1 < len(child); i++ {
			d := child[i] - child[i+1]
			if d < 0 {
				d = -d
			}
			require.True(t, d == 1 || d == 7, "non-parental edge %d-%d in %v", child[i], child[i+1], child)
		}
	})
}

func TestEdgeRecombination_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := operators.EdgeRecombination(nil, nil, rng)
	require.ErrorIs(t, err, operators.ErrEmptyParent)

	_, err = operators.EdgeRecombination([]int{0, 1}, []int{0, 1, 2}, rng)
	require.ErrorIs(t, err, operators.ErrLengthMismatch)

	_, err = operators.EdgeRecombination([]int{0, 1}, []int{1, 0}, nil)
	require.ErrorIs(t, err, operators.ErrNilRand)
}

// TestEdgeRecombiner_MatchesFreeFunction locks that reusing scratch across
// calls gives the same children as fresh scratch under the same seed.
func TestEdgeRecombiner_MatchesFreeFunction(t *testing.T) {
	const n = 20
	setup := rand.New(rand.NewSource(99))
	pairs := make([][2][]int, 10)
	for i := range pairs {
		pairs[i] = [2][]int{operators.RandomPermutation(n, setup), operators.RandomPermutation(n, setup)}
	}

	reused := operators.NewEdgeRecombiner(n, rand.New(rand.NewSource(7)))
	freshRNG := rand.New(rand.NewSource(7))
	for _, pr := range pairs {
		got, err := reused.Recombine(pr[0], pr[1])
		require.NoError(t, err)
		want, err := operators.EdgeRecombination(pr[0], pr[1], freshRNG)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// A different length resizes the scratch transparently.
	short := operators.RandomPermutation(5, setup)
	other := operators.RandomPermutation(5, setup)
	child, err := reused.Recombine(short, other)
	require.NoError(t, err)
	require.NoError(t, operators.ValidatePermutation(child, 5))
}

func TestRecombiners_SeedDeterminism(t *testing.T) {
	for _, kind := range []operators.RecombinationKind{operators.EdgeRecombinationKind, operators.OrderCrossoverKind} {
		t.Run(kind.String(), func(t *testing.T) {
			run := func() [][]int {
				rng := rand.New(rand.NewSource(31))
				r, err := operators.NewRecombiner(kind, 15, rng)
				require.NoError(t, err)
				out := make([][]int, 0, 10)
				var i int
				for i = 0; i < 10; i++ {
					p1 := operators.RandomPermutation(15, rng)
					p2 := operators.RandomPermutation(15, rng)
					c, err := r.Recombine(p1, p2)
					require.NoError(t, err)
					require.NoError(t, operators.ValidatePermutation(c, 15))
					out = append(out, c)
				}
				return out
			}
			first := run()
			Repeat(t, 3, func(t *testing.T) {
				again := run()
				require.Equal(t, first, again)
			})
		})
	}
}
