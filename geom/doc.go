// SPDX-License-Identifier: MIT

// Package geom holds the planar city model used by the evolution engine.
//
// Cities live in the normalized unit square [0,1]×[0,1]. Distances are plain
// Euclidean norms of the coordinate difference; no display scale is ever
// folded into them, so a renderer may project points at any resolution
// without changing which tour is shorter.
//
// Two Metric implementations are provided:
//
//   - Points:         computes Distance on every lookup (no setup cost).
//   - DistanceMatrix: precomputes all pairs into a row-major buffer.
//
// Both return bit-identical values for the same pair, so tour costs do not
// depend on which one a caller picks.
//
// Complexity:
//   - Distance: O(1).
//   - NewDistanceMatrix: O(n²) time and space; Between/At: O(1).
package geom
