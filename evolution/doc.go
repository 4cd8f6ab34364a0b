// SPDX-License-Identifier: MIT

// Package evolution is the genetic-algorithm engine of evotsp.
//
// An Engine owns a fixed city set and a fixed-capacity population of tours
// and evolves them generation by generation:
//
//  1. cancellation check (Stop or context) at the top of every generation;
//  2. linear-rank parent-pool selection of exactly ParentPoolSize slots;
//  3. deterministic pairing (ascending slot order), two children per pair
//     via the configured Recombiner, each mutated and costed;
//  4. replacement: by default a global elitist truncation of all children
//     and contributing parents into the drawn slots, then a full re-sort;
//  5. convergence tracking over a sliding window of best costs;
//  6. throughput tracking over a sliding window of generation durations;
//  7. observer notification with a one-line status.
//
// Lifecycle:
//
//	Idle ──Run──▶ Running ──budget exhausted──▶ Completed
//	               │   ▲
//	    Stop / ctx ▼   │ Run (resume)
//	             Stopped
//
// Concurrency:
//   - Run is single-threaded and synchronous; it suspends nowhere but the
//     cancellation check, so a generation in progress always completes.
//   - Stop, State, Snapshot and Cities are safe to call from other
//     goroutines while Run executes. Nothing else is.
//   - Every Engine owns its random source and ERX scratch; independent
//     engines may run in parallel without coordination.
//
// Ambient stack: zap for logging (no-op unless WithLogger is given),
// gonum for window statistics, go-humanize for status text.
package evolution
