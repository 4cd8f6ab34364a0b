// SPDX-License-Identifier: MIT

// Package operators - 2-opt local search on open paths.
//
// TwoOpt performs deterministic first-improvement 2-opt on an open path.
// Reversing positions [i..k] replaces the boundary edges (a,b) and (c,d),
// a=T[i−1], b=T[i], c=T[k], d=T[k+1], with (a,c) and (b,d). A boundary at
// either end of the path has no edge, so prefix and suffix reversals change
// a single edge:
//
//	Δ = [i>0]·(w(a,c) − w(a,b)) + [k<n−1]·(w(b,d) − w(c,d))
//
// Contracts:
//   - tour is a permutation of the cities dist covers; it is improved in place.
//   - Reversing the whole path (i=0, k=n−1) never changes the cost and is skipped.
//
// Complexity:
//   - One pass: O(n²) candidate checks; each accepted move costs O(k−i+1).
package operators

// Distances is the symmetric cost oracle used by local search.
type Distances interface {
	Between(i, j int) float64
}

// TwoOptOptions tunes TwoOpt.
type TwoOptOptions struct {
	// Eps: a move is accepted only when Δ < −Eps.
	Eps float64
	// MaxMoves bounds the accepted moves; 0 runs to a local optimum.
	MaxMoves int
}

// DefaultTwoOptOptions runs to a local optimum with a 1e-12 tolerance.
func DefaultTwoOptOptions() TwoOptOptions {
	return TwoOptOptions{Eps: 1e-12}
}

// TwoOpt improves tour in place and returns the number of accepted moves
// and the total cost change (≤ 0).
func TwoOpt(tour []int, dist Distances, opts TwoOptOptions) (int, float64, error) {
	if opts.Eps < 0 {
		return 0, 0, ErrNegativeTolerance
	}
	n := len(tour)
	if n < 3 {
		return 0, 0, nil
	}

	var (
		accepted int
		gain     float64
		improved = true
		i, k     int
		delta    float64
	)
	for improved {
		improved = false
		for i = 0; i < n-1; i++ {
			for k = i + 1; k < n; k++ {
				if i == 0 && k == n-1 {
					continue
				}
				delta = 0
				if i > 0 {
					delta += dist.Between(tour[i-1], tour[k]) - dist.Between(tour[i-1], tour[i])
				}
				if k < n-1 {
					delta += dist.Between(tour[i], tour[k+1]) - dist.Between(tour[k], tour[k+1])
				}
				if delta >= -opts.Eps {
					continue
				}

				Invert(tour, i, k)
				gain += delta
				accepted++
				improved = true
				if opts.MaxMoves > 0 && accepted >= opts.MaxMoves {
					return accepted, gain, nil
				}
			}
		}
	}

	return accepted, gain, nil
}
