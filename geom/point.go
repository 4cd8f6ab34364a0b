// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"math"
	"math/rand"
)

// Point is a city position in the unit square. Points are values; nothing in
// this module mutates one after creation.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between a and b.
// Pure and symmetric; zero iff a == b.
//
// Complexity: O(1).
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// finite reports whether both coordinates are finite numbers.
func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Points is an ordered city set; the slice index is the city index used by
// tours. It satisfies Metric by computing distances on demand.
type Points []Point

var _ Metric = Points(nil)

// Len returns the number of cities.
func (ps Points) Len() int { return len(ps) }

// Between returns the distance between cities i and j.
// Indices are not checked; callers pass tour entries that are already
// validated permutations.
func (ps Points) Between(i, j int) float64 {
	return Distance(ps[i], ps[j])
}

// Validate checks that the set is non-empty and every coordinate is finite.
//
// Complexity: O(n).
func (ps Points) Validate() error {
	if len(ps) == 0 {
		return ErrNoPoints
	}
	var i int
	for i = range ps {
		if !ps[i].finite() {
			return fmt.Errorf("city %d %v: %w", i, ps[i], ErrNonFinite)
		}
	}

	return nil
}

// Clone returns an independent copy of the set.
func (ps Points) Clone() Points {
	return append(Points(nil), ps...)
}

// RandomPoints draws n cities uniformly from [0,1)² using rng.
// The X coordinate of each city is drawn before its Y coordinate, so a fixed
// seed always produces the same layout.
//
// Complexity: O(n).
func RandomPoints(n int, rng *rand.Rand) Points {
	if n <= 0 {
		return nil
	}
	pts := make(Points, n)

	var i int
	for i = 0; i < n; i++ {
		pts[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}

	return pts
}
