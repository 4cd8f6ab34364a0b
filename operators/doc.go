// SPDX-License-Identifier: MIT

// Package operators is the genetic operator library of evotsp.
//
// Everything here works on plain index slices ([]int permutations of
// 0..n-1) and knows nothing about cities, costs or populations; the
// evolution engine is the only caller with domain knowledge.
//
// Contents:
//
//   - Moves (in place): Swap, Invert, Rotate, Relocate.
//   - Recombination: OrderCrossover (OX-1) and EdgeRecombination (ERX) with
//     its per-call adjacency scratch, EdgeTable.
//   - Strategies: the Recombiner and Mutator interfaces plus the tagged
//     selectors RecombinationKind and MutationKind used by configuration.
//   - Permutation helpers: Identity, Shuffle, ValidatePermutation.
//   - Seeded random streams: RNGFromSeed, DeriveSeed.
//
// Concurrency:
//   - Free functions are safe for concurrent use on distinct slices.
//   - Strategy values own a *rand.Rand (and ERX owns its EdgeTable); they are
//     NOT goroutine-safe. Give every engine its own instances.
//
// Errors are package sentinels (see errors.go); nothing panics on bad input
// except plain index-out-of-range on the unchecked in-place moves.
package operators
