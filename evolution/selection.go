// SPDX-License-Identifier: MIT

package evolution

import "math/rand"

// rankWeights returns the admission probability of every population index
// for a sorted population of size p. Index p-rank has weight
// (1/p)·(0.5 + (rank-1)/(p-1)): the best (index 0) gets 1.5/p, the worst
// 0.5/p, and the weights sum to one.
func rankWeights(p int) []float64 {
	var (
		w    = make([]float64, p)
		inv  = 1 / float64(p)
		rank int
	)
	for rank = 1; rank <= p; rank++ {
		w[p-rank] = inv * (0.5 + float64(rank-1)/float64(p-1))
	}

	return w
}

// selector draws parent pools. Its scratch is reused across generations.
type selector struct {
	weights []float64
	inPool  []bool
	pool    []int
}

func newSelector(p, k int) *selector {
	return &selector{
		weights: rankWeights(p),
		inPool:  make([]bool, p),
		pool:    make([]int, 0, k),
	}
}

// draw sweeps the population from worst to best, admitting each index with
// its weight, and repeats sweeps until exactly k distinct indices are in.
// Every index draws a coin on every sweep, admitted or not. The returned
// slice lists the indices in ascending order and is valid until the next
// draw.
//
// Complexity: expected O(p·sweeps); one sweep admits one index on average.
func (s *selector) draw(rng *rand.Rand, k int) []int {
	var (
		p     = len(s.weights)
		count int
		idx   int
	)
	clear(s.inPool)
	for count < k {
		for idx = p - 1; idx >= 0 && count < k; idx-- {
			if rng.Float64() < s.weights[idx] && !s.inPool[idx] {
				s.inPool[idx] = true
				count++
			}
		}
	}

	s.pool = s.pool[:0]
	for idx = 0; idx < p; idx++ {
		if s.inPool[idx] {
			s.pool = append(s.pool, idx)
		}
	}

	return s.pool
}
