// SPDX-License-Identifier: MIT

package evolution

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Observer receives one human-readable status line per generation, plus
// the startup line and, on the first convergence of a run, one notice. OnUpdate runs on the engine's
// goroutine and must not block.
type Observer interface {
	OnUpdate(status string)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(status string)

// OnUpdate calls f(status).
func (f ObserverFunc) OnUpdate(status string) { f(status) }

// StartupStatus is emitted once before the first generation.
const StartupStatus = "Simulation starting up..."

func statusLine(generation int, cost, rate float64) string {
	return fmt.Sprintf("Generation %d Cost %s Rate %s",
		generation, humanize.FtoaWithDigits(cost, 4), humanize.CommafWithDigits(rate, 1))
}

func checkpointSuffix(generation int, cost float64) string {
	return fmt.Sprintf(" Cost at %d: %s", generation, humanize.FtoaWithDigits(cost, 4))
}

func convergedLine(generation int) string {
	return fmt.Sprintf("Converged at generation %d", generation)
}

func (e *Engine) notify(status string) {
	if e.observer != nil {
		e.observer.OnUpdate(status)
	}
}
