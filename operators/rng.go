// SPDX-License-Identifier: MIT

// Package operators - seeded random streams.
//
// Goals:
//   - Determinism: same seed ⇒ identical runs on every platform.
//   - Ownership: every engine owns one *rand.Rand; nothing here is global.
//   - Independence: DeriveSeed splits one seed into decorrelated per-run
//     seeds so a batch of concurrent engines never shares a generator.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share one across engines.
package operators

import "math/rand"

// DefaultSeed is used when callers pass seed == 0.
// The value is arbitrary but stable to keep zero-config runs reproducible.
const DefaultSeed int64 = 1

// RNGFromSeed returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func RNGFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// golden is 2⁶⁴/φ, the SplitMix64 increment.
const golden = 0x9e3779b97f4a7c15

// DeriveSeed returns the seed of stream number stream under parent: the
// SplitMix64 output at step stream+1 of a sequence started at parent.
// Both the step and the finalizer are bijective, so distinct streams of one
// parent never share a seed.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	return int64(mix64(uint64(parent) + (stream+1)*golden))
}

// mix64 is the SplitMix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ z>>30) * 0xbf58476d1ce4e5b9
	z = (z ^ z>>27) * 0x94d049bb133111eb

	return z ^ z>>31
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using rng.
// rng == nil falls back to the DefaultSeed stream.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(a []int, rng *rand.Rand) {
	n := len(a)
	if n <= 1 {
		return
	}
	if rng == nil {
		rng = RNGFromSeed(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
