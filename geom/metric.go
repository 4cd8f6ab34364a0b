// SPDX-License-Identifier: MIT

// Package geom - precomputed distance storage.
//
// DistanceMatrix keeps all pairwise distances in one row-major buffer with
// the explicit offset formula i*n + j. It trades O(n²) memory for O(1)
// lookups without a square root, which pays off once a run evaluates many
// more tours than there are city pairs.
//
// Complexity quicksheet:
//   - NewDistanceMatrix: O(n²); At/Between: O(1); Len: O(1).

package geom

import "fmt"

// Metric yields the travel distance between two cities by index.
type Metric interface {
	// Len returns the number of cities the metric covers.
	Len() int

	// Between returns the distance from city i to city j. Implementations
	// may skip bounds checks; callers must pass indices in [0, Len()).
	Between(i, j int) float64
}

// DistanceMatrix is a dense symmetric n×n table of city distances.
type DistanceMatrix struct {
	n    int       // number of cities
	data []float64 // row-major storage, len == n*n
}

var _ Metric = (*DistanceMatrix)(nil)

// NewDistanceMatrix precomputes every pairwise distance of pts.
// Only the upper triangle is computed; it is mirrored into the lower one so
// that Between(i,j) and Between(j,i) are bit-identical.
//
// Errors: ErrNoPoints, ErrNonFinite (wrapped with the offending city).
//
// Complexity: O(n²) time and space.
func NewDistanceMatrix(pts Points) (*DistanceMatrix, error) {
	if err := pts.Validate(); err != nil {
		return nil, err
	}
	n := len(pts)
	m := &DistanceMatrix{n: n, data: make([]float64, n*n)}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = Distance(pts[i], pts[j])
			m.data[i*n+j] = d
			m.data[j*n+i] = d
		}
	}

	return m, nil
}

// Len returns the number of cities.
func (m *DistanceMatrix) Len() int { return m.n }

// Between returns the cached distance between i and j without bounds checks.
func (m *DistanceMatrix) Between(i, j int) float64 {
	return m.data[i*m.n+j]
}

// At is the checked accessor.
func (m *DistanceMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("DistanceMatrix.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.data[i*m.n+j], nil
}
