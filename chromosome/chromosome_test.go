package chromosome_test

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/katalvlaran/evotsp/chromosome"
	"github.com/katalvlaran/evotsp/geom"
	"github.com/katalvlaran/evotsp/operators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corners is the unit square, listed counter-clockwise from the origin.
var corners = geom.Points{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func TestCalculateCost_OpenPath(t *testing.T) {
	c := chromosome.FromPermutation([]int{0, 1, 2, 3})
	require.True(t, c.Stale())

	c.CalculateCost(corners)
	require.False(t, c.Stale())
	// Three unit sides, no closing edge back to city 0.
	require.Equal(t, 3.0, c.Cost())

	d := chromosome.FromPermutation([]int{0, 2, 1, 3})
	d.CalculateCost(corners)
	require.InDelta(t, 2*math.Sqrt2+1, d.Cost(), 1e-12)

	single := chromosome.FromPermutation([]int{0})
	single.CalculateCost(geom.Points{{X: 0.5, Y: 0.5}})
	require.Zero(t, single.Cost())
}

func TestCalculateCost_ReverseInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	pts := geom.RandomPoints(40, rng)

	var trial int
	for trial = 0; trial < 25; trial++ {
		c, err := chromosome.Random(len(pts), pts, rng)
		require.NoError(t, err)

		rev := c.Tour()
		slices.Reverse(rev)
		r := chromosome.FromPermutation(rev)
		r.CalculateCost(pts)

		require.InDelta(t, c.Cost(), r.Cost(), 1e-12)
	}
}

func TestCalculateCost_MetricsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pts := geom.RandomPoints(30, rng)
	m, err := geom.NewDistanceMatrix(pts)
	require.NoError(t, err)

	c, err := chromosome.Random(30, pts, rng)
	require.NoError(t, err)
	viaPoints := c.Cost()
	c.CalculateCost(m)
	require.Equal(t, viaPoints, c.Cost())
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pts := geom.RandomPoints(12, rng)

	c, err := chromosome.Random(12, pts, rng)
	require.NoError(t, err)
	require.NoError(t, operators.ValidatePermutation(c.Tour(), 12))
	require.False(t, c.Stale())
	require.Positive(t, c.Cost())

	_, err = chromosome.Random(0, pts, rng)
	require.ErrorIs(t, err, chromosome.ErrEmptyTour)
	_, err = chromosome.Random(5, pts, rng)
	require.ErrorIs(t, err, chromosome.ErrMetricSize)
}

func TestMutate_Probability(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := operators.NewMutator(operators.InvertKind, rng)
	require.NoError(t, err)

	c := chromosome.FromPermutation(operators.Identity(10))
	c.CalculateCost(geom.RandomPoints(10, rng))

	ran, err := c.Mutate(rng, 0, m)
	require.NoError(t, err)
	require.False(t, ran)
	require.False(t, c.Stale())
	require.Equal(t, operators.Identity(10), c.Tour())

	ran, err = c.Mutate(rng, 1, m)
	require.NoError(t, err)
	require.True(t, ran)
	require.True(t, c.Stale())
	require.NoError(t, operators.ValidatePermutation(c.Tour(), 10))

	// Roughly a quarter of coins land under .25.
	hits := 0
	var i int
	for i = 0; i < 4000; i++ {
		if ran, _ := c.Mutate(rng, 0.25, m); ran {
			hits++
		}
	}
	assert.InDelta(t, 1000, hits, 120)
}

func TestTourCopyAndClone(t *testing.T) {
	c := chromosome.FromPermutation([]int{2, 0, 1})
	c.CalculateCost(geom.Points{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})

	tour := c.Tour()
	tour[0] = 99
	require.Equal(t, 2, c.City(0))
	require.Equal(t, 3, c.Len())

	cl := c.Clone()
	require.Equal(t, c.Cost(), cl.Cost())
	cl.Genes()[0] = 1
	require.Equal(t, 2, c.City(0))
	require.Contains(t, c.String(), "cost=")
}

func TestSort(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	pts := geom.RandomPoints(15, rng)

	pop := make([]*chromosome.Chromosome, 50)
	for i := range pop {
		c, err := chromosome.Random(15, pts, rng)
		require.NoError(t, err)
		pop[i] = c
	}
	chromosome.Sort(pop)
	require.True(t, chromosome.IsSorted(pop))

	var i int
	for i = 1; i < len(pop); i++ {
		require.False(t, chromosome.Less(pop[i], pop[i-1]))
	}
}

func TestPolish(t *testing.T) {
	c := chromosome.FromPermutation([]int{0, 2, 1, 3})
	c.CalculateCost(corners)
	moves, err := c.Polish(corners, operators.DefaultTwoOptOptions())
	require.NoError(t, err)
	require.Positive(t, moves)
	require.Equal(t, 3.0, c.Cost())

	rng := rand.New(rand.NewSource(12))
	pts := geom.RandomPoints(40, rng)
	r, err := chromosome.Random(40, pts, rng)
	require.NoError(t, err)
	before := r.Cost()
	_, err = r.Polish(pts, operators.DefaultTwoOptOptions())
	require.NoError(t, err)
	require.Less(t, r.Cost(), before)
	require.NoError(t, operators.ValidatePermutation(r.Tour(), 40))
}
