// SPDX-License-Identifier: MIT

package operators

import "math/rand"

// Identity returns the permutation 0, 1, …, n-1 (nil for n <= 0).
func Identity(n int) []int {
	if n <= 0 {
		return nil
	}
	p := make([]int, n)
	var i int
	for i = range p {
		p[i] = i
	}

	return p
}

// RandomPermutation returns a uniformly random permutation of 0..n-1.
//
// Complexity: O(n).
func RandomPermutation(n int, rng *rand.Rand) []int {
	p := Identity(n)
	Shuffle(p, rng)

	return p
}

// ValidatePermutation checks that perm is a permutation of 0..n-1 of length n.
// Only a single O(n) marker slice is allocated.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 || len(perm) != n {
		return ErrNotPermutation
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		// Out-of-range and duplicate both break the bijection.
		if v < 0 || v >= n || seen[v] {
			return ErrNotPermutation
		}
		seen[v] = true
	}

	return nil
}
