// SPDX-License-Identifier: MIT

package evolution

import "slices"

// Result summarises a Run.
type Result struct {
	// BestCost and BestTour describe the best chromosome at return time.
	BestCost float64
	BestTour []int

	// Converged reports whether the convergence test ever held.
	// ConvergenceGeneration is the last generation at which it held, and
	// FirstConvergenceGeneration the first. Both are meaningful only when
	// Converged is true.
	Converged                  bool
	ConvergenceGeneration      int
	FirstConvergenceGeneration int

	// Rate is generations per second over the rate window.
	Rate float64

	// Generations is the number of generations completed so far.
	Generations int

	Outcome Outcome

	// CheckpointCost is the best cost at Config.CheckpointGeneration, valid
	// when CheckpointReached is true.
	CheckpointCost    float64
	CheckpointReached bool
}

// Snapshot is a consistent view of the engine published at the end of
// every generation. BestTour is never mutated after publication.
type Snapshot struct {
	Generation            int
	BestCost              float64
	BestTour              []int
	Rate                  float64
	Converged             bool
	ConvergenceGeneration int
	Status                string
	State                 State
}

// Snapshot returns the last published view. Safe for concurrent use with
// Run.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	s := e.snap
	e.mu.RUnlock()
	s.BestTour = slices.Clone(s.BestTour)
	s.State = e.State()

	return s
}

func (e *Engine) publish(status string, rate float64) {
	best := e.population[0]
	s := Snapshot{
		Generation:            e.generation,
		BestCost:              best.Cost(),
		BestTour:              best.Tour(),
		Rate:                  rate,
		Converged:             e.converged,
		ConvergenceGeneration: e.convergenceGen,
		Status:                status,
	}

	e.mu.Lock()
	e.snap = s
	e.mu.Unlock()
}
