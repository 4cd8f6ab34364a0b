// SPDX-License-Identifier: MIT

package evolution

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Option configures collaborators of an Engine that are not plain data.
type Option func(*Engine)

// WithRand makes the engine draw every random decision (cities, initial
// tours, selection, recombination, mutation) from rng instead of a source
// seeded from Config.Seed. The engine takes ownership of rng.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithObserver registers the receiver of status lines.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock replaces time.Now for generation timing, mainly in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
