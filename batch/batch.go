// SPDX-License-Identifier: MIT

// Package batch runs repeated, independent evolutions of one configuration
// and aggregates their results.
//
// Every repetition gets its own Engine and its own random stream, derived
// from the batch seed and the repetition index with operators.DeriveSeed,
// so a batch is reproducible whatever the worker count. Engines share
// nothing; a bounded conc pool runs them concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/katalvlaran/evotsp/evolution"
	"github.com/katalvlaran/evotsp/operators"
)

// ErrInvalidConfig is the root of every batch configuration error.
var ErrInvalidConfig = errors.New("batch: invalid config")

// DefaultRepetitions mirrors the classic "average over ten runs" harness.
const DefaultRepetitions = 10

// Config describes a batch.
type Config struct {
	// Engine is the per-run configuration. Its Seed is ignored; each run
	// derives its own from Seed below.
	Engine evolution.Config

	// Repetitions is the number of independent runs (> 0).
	Repetitions int

	// Workers bounds concurrency. Zero means GOMAXPROCS.
	Workers int

	// Seed is the batch seed. Zero selects operators.DefaultSeed.
	Seed int64
}

// DefaultConfig returns DefaultRepetitions runs of evolution.DefaultConfig.
func DefaultConfig() Config {
	return Config{
		Engine:      evolution.DefaultConfig(),
		Repetitions: DefaultRepetitions,
	}
}

// Validate checks the batch fields and the engine configuration.
func (c Config) Validate() error {
	if c.Repetitions <= 0 {
		return fmt.Errorf("%w: repetitions %d must be > 0", ErrInvalidConfig, c.Repetitions)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must be >= 0", ErrInvalidConfig, c.Workers)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// RunSeed returns the engine seed of repetition rep.
func (c Config) RunSeed(rep int) int64 {
	seed := c.Seed
	if seed == 0 {
		seed = operators.DefaultSeed
	}

	return operators.DeriveSeed(seed, uint64(rep))
}

// RunResult is the outcome of one repetition.
type RunResult struct {
	Repetition int
	Seed       int64
	evolution.Result
}

// Run executes the batch. Cancelling ctx stops every engine at its next
// generation boundary; their partial results are still summarised. An
// engine failure is returned joined with any others, alongside the
// summary of all runs.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger.Info("batch started",
		zap.Int("repetitions", cfg.Repetitions),
		zap.Int("workers", workers),
		zap.Int64("seed", cfg.Seed))

	var (
		runs = make([]RunResult, cfg.Repetitions)
		p    = pool.New().WithContext(ctx).WithMaxGoroutines(workers)
	)
	for rep := range cfg.Repetitions {
		p.Go(func(ctx context.Context) error {
			runs[rep] = RunResult{Repetition: rep, Seed: cfg.RunSeed(rep)}

			engineCfg := cfg.Engine
			engineCfg.Seed = runs[rep].Seed
			log := logger.With(zap.Int("rep", rep))

			e, err := evolution.New(engineCfg, evolution.WithLogger(log))
			if err != nil {
				return fmt.Errorf("batch: run %d: %w", rep, err)
			}
			res, err := e.Run(ctx)
			runs[rep].Result = res
			if err != nil {
				return fmt.Errorf("batch: run %d: %w", rep, err)
			}
			log.Info("run finished",
				zap.Stringer("outcome", res.Outcome),
				zap.Int("generations", res.Generations),
				zap.Float64("best_cost", res.BestCost))

			return nil
		})
	}
	runErr := p.Wait()

	summary, err := Summarize(runs)
	if err != nil {
		return summary, errors.Join(runErr, err)
	}
	logger.Info("batch finished",
		zap.Float64("mean_cost", summary.Cost.Mean),
		zap.Float64("min_cost", summary.Cost.Min),
		zap.Int("converged", summary.Converged),
		zap.Int("stopped", summary.Stopped))

	return summary, runErr
}
