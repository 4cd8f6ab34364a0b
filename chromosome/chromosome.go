// SPDX-License-Identifier: MIT

// Package chromosome wraps a tour (a permutation of city indices) together
// with its cached open-path cost.
//
// The cost is the sum of distances between consecutive cities at positions
// 0..n-2; there is no closing edge back to the first city. It is derived
// data: any structural change marks it stale until CalculateCost runs again.
package chromosome

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"github.com/katalvlaran/evotsp/geom"
	"github.com/katalvlaran/evotsp/operators"
)

var (
	// ErrEmptyTour is returned when a chromosome would hold no cities.
	ErrEmptyTour = errors.New("chromosome: empty tour")

	// ErrMetricSize signals a metric that does not cover the tour's cities.
	ErrMetricSize = errors.New("chromosome: metric size does not match tour length")
)

// Chromosome is one candidate tour. The zero value is not usable; build one
// with Random or FromPermutation.
type Chromosome struct {
	tour  []int
	cost  float64
	stale bool
}

// Random returns a chromosome holding a uniformly random permutation of
// 0..n-1 (Fisher–Yates over rng) with its cost already computed.
//
// Complexity: O(n).
func Random(n int, metric geom.Metric, rng *rand.Rand) (*Chromosome, error) {
	if n <= 0 {
		return nil, ErrEmptyTour
	}
	if metric.Len() != n {
		return nil, fmt.Errorf("metric covers %d cities, tour has %d: %w", metric.Len(), n, ErrMetricSize)
	}
	c := &Chromosome{tour: operators.RandomPermutation(n, rng)}
	c.CalculateCost(metric)

	return c, nil
}

// FromPermutation wraps tour, taking ownership of the slice. The caller
// guarantees it is a valid permutation. The cost is stale until
// CalculateCost is called.
func FromPermutation(tour []int) *Chromosome {
	return &Chromosome{tour: tour, stale: true}
}

// CalculateCost recomputes the open-path cost against metric.
//
// Complexity: O(n).
func (c *Chromosome) CalculateCost(metric geom.Metric) {
	var (
		sum float64
		i   int
	)
	for i = 0; i < len(c.tour)-1; i++ {
		sum += metric.Between(c.tour[i], c.tour[i+1])
	}
	c.cost = sum
	c.stale = false
}

// Cost returns the cached cost. It is meaningless while Stale reports true.
func (c *Chromosome) Cost() float64 { return c.cost }

// Stale reports whether the tour changed since the last CalculateCost.
func (c *Chromosome) Stale() bool { return c.stale }

// Len returns the number of cities in the tour.
func (c *Chromosome) Len() int { return len(c.tour) }

// City returns the city visited at position i.
func (c *Chromosome) City(i int) int { return c.tour[i] }

// Tour returns a copy of the visiting order.
func (c *Chromosome) Tour() []int { return slices.Clone(c.tour) }

// Genes exposes the underlying order without copying, for recombination.
// Callers must treat it as read-only.
func (c *Chromosome) Genes() []int { return c.tour }

// Clone returns an independent copy, cost and staleness included.
func (c *Chromosome) Clone() *Chromosome {
	return &Chromosome{tour: slices.Clone(c.tour), cost: c.cost, stale: c.stale}
}

// Mutate applies m with the given probability, drawing the coin from rng.
// It reports whether the mutation ran; if it did, the cost is stale.
// probability <= 0 never mutates, probability >= 1 always does.
func (c *Chromosome) Mutate(rng *rand.Rand, probability float64, m operators.Mutator) (bool, error) {
	if rng.Float64() >= probability {
		return false, nil
	}
	if err := m.Mutate(c.tour); err != nil {
		return false, err
	}
	c.stale = true

	return true, nil
}

// Polish runs open-path 2-opt on the tour and recomputes its cost. It
// returns the number of accepted moves.
func (c *Chromosome) Polish(metric geom.Metric, opts operators.TwoOptOptions) (int, error) {
	moves, _, err := operators.TwoOpt(c.tour, metric, opts)
	if err != nil {
		return 0, err
	}
	c.CalculateCost(metric)

	return moves, nil
}

// String implements fmt.Stringer.
func (c *Chromosome) String() string {
	return fmt.Sprintf("%v cost=%.6f", c.tour, c.cost)
}

// Less orders chromosomes by ascending cost.
func Less(a, b *Chromosome) bool { return a.cost < b.cost }

// ByCost sorts chromosomes by ascending cost.
type ByCost []*Chromosome

func (s ByCost) Len() int           { return len(s) }
func (s ByCost) Less(i, j int) bool { return s[i].cost < s[j].cost }
func (s ByCost) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Sort orders cs ascending by cost. Ties keep no particular order.
//
// Complexity: O(n log n).
func Sort(cs []*Chromosome) {
	sort.Sort(ByCost(cs))
}

// IsSorted reports whether cs is ascending by cost.
func IsSorted(cs []*Chromosome) bool {
	return sort.IsSorted(ByCost(cs))
}
