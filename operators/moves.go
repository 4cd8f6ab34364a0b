// SPDX-License-Identifier: MIT

// Package operators - in-place mutation moves.
//
// All moves rearrange elements without changing the multiset, so a
// permutation stays a permutation. Swap, Invert and Rotate do not check
// indices (they are hot-path helpers fed by the engine's own RNG draws);
// Relocate validates its arguments because its contract has an
// illegal-but-in-range case.
package operators

// Swap exchanges arr[i] and arr[j].
//
// Complexity: O(1).
func Swap(arr []int, i, j int) {
	arr[i], arr[j] = arr[j], arr[i]
}

// Invert reverses the closed range between i and j in place. The bounds are
// normalized with min/max, so argument order does not matter; i == j is a
// no-op and applying Invert twice with the same bounds restores arr.
//
// Complexity: O(|j-i|).
func Invert(arr []int, i, j int) {
	if i > j {
		i, j = j, i
	}
	for i < j {
		arr[i], arr[j] = arr[j], arr[i]
		i++
		j--
	}
}

// Rotate cyclically shifts arr right by distance: the element at position p
// moves to (p+distance) mod len. Negative distances rotate left.
//
// Implementation: cycle-leader ("juggling") rotation, one pass, O(1) extra.
//
// Complexity: O(n).
func Rotate(arr []int, distance int) {
	n := len(arr)
	if n == 0 {
		return
	}
	distance %= n
	if distance < 0 {
		distance += n
	}
	if distance == 0 {
		return
	}

	var (
		cycleStart int
		moved      int
		i          int
		displaced  int
	)
	for cycleStart, moved = 0, 0; moved != n; cycleStart++ {
		displaced = arr[cycleStart]
		i = cycleStart
		for {
			i += distance
			if i >= n {
				i -= n
			}
			arr[i], displaced = displaced, arr[i]
			moved++
			if i == cycleStart {
				break
			}
		}
	}
}

// Relocate moves the half-open block [srcStart, srcEnd) so that it starts
// right before the element originally at dest, shifting the elements in
// between. dest == len(arr) moves the block to the end; dest equal to
// srcStart or srcEnd leaves arr unchanged.
//
// Contract:
//   - 0 <= srcStart <= srcEnd <= len(arr) and 0 <= dest <= len(arr),
//     otherwise ErrIndexOutOfRange.
//   - srcStart < dest < srcEnd is ErrRelocateOverlap.
//
// Implementation: a single Rotate of the window spanning block and target.
//
// Complexity: O(|dest - srcStart| + block length).
func Relocate(arr []int, srcStart, srcEnd, dest int) error {
	n := len(arr)
	if srcStart < 0 || srcStart > srcEnd || srcEnd > n || dest < 0 || dest > n {
		return ErrIndexOutOfRange
	}
	if dest > srcStart && dest < srcEnd {
		return ErrRelocateOverlap
	}
	block := srcEnd - srcStart
	if block == 0 {
		return nil
	}

	switch {
	case dest < srcStart:
		// Window [dest, srcEnd): the block is its tail; rotate it to the front.
		Rotate(arr[dest:srcEnd], block)
	case dest > srcEnd:
		// Window [srcStart, dest): the block is its head; rotate it to the back.
		Rotate(arr[srcStart:dest], -block)
	}

	return nil
}
