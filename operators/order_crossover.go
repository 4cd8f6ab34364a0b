// SPDX-License-Identifier: MIT

package operators

// OrderCrossover implements OX-1.
//
// The child receives parent1[start:end) verbatim at the same positions. The
// remaining positions are filled by scanning parent2 from index 0 and
// copying every element not already in that segment, in parent2's order.
// The insertion cursor starts at 0 and jumps to end when it reaches start,
// so the pre-filled segment is skipped.
//
// Contract:
//   - len(parent1) == len(parent2), else ErrLengthMismatch.
//   - 0 <= start <= end <= len, else ErrSegmentOutOfRange.
//   - Both parents are permutations of 0..n-1; a value outside that range
//     yields ErrNotPermutation.
//
// Returns a fresh slice; parents are not modified.
//
// Complexity: O(n) time, O(n) extra space.
func OrderCrossover(parent1, parent2 []int, start, end int) ([]int, error) {
	n := len(parent1)
	if len(parent2) != n {
		return nil, ErrLengthMismatch
	}
	if start < 0 || start > end || end > n {
		return nil, ErrSegmentOutOfRange
	}

	child := make([]int, n)
	inSegment := make([]bool, n)

	var (
		i int
		v int
	)
	for i = start; i < end; i++ {
		v = parent1[i]
		if v < 0 || v >= n {
			return nil, ErrNotPermutation
		}
		child[i] = v
		inSegment[v] = true
	}

	cursor := 0
	for i = 0; i < n; i++ {
		if cursor == start {
			cursor = end
		}
		v = parent2[i]
		if v < 0 || v >= n {
			return nil, ErrNotPermutation
		}
		if inSegment[v] {
			continue
		}
		if cursor >= n {
			// More outside-segment elements than free slots: parent2 holds a
			// duplicate, so the two parents are not permutations of each other.
			return nil, ErrNotPermutation
		}
		child[cursor] = v
		cursor++
	}

	return child, nil
}
