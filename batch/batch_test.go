package batch_test

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/evotsp/batch"
	"github.com/katalvlaran/evotsp/evolution"
	"github.com/katalvlaran/evotsp/geom"
)

func cornerBatch(reps, workers int) batch.Config {
	cfg := batch.DefaultConfig()
	cfg.Engine.CityCount = 0
	cfg.Engine.Cities = geom.Points{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	cfg.Engine.PopulationSize = 20
	cfg.Engine.ParentPoolSize = 10
	cfg.Engine.MaxGenerations = 50
	cfg.Engine.ConvergenceWindow = 10
	cfg.Engine.ConvergenceThreshold = 1e-9
	cfg.Repetitions = reps
	cfg.Workers = workers
	cfg.Seed = 2024

	return cfg
}

func TestRun_SquareCorners(t *testing.T) {
	cfg := cornerBatch(6, 3)
	s, err := batch.Run(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.Len(t, s.Runs, 6)
	for i, r := range s.Runs {
		require.Equal(t, i, r.Repetition)
		require.Equal(t, cfg.RunSeed(i), r.Seed)
		require.Equal(t, evolution.OutcomeCompleted, r.Outcome)
		require.Equal(t, 3.0, r.BestCost)
	}
	require.Equal(t, 3.0, s.Cost.Mean)
	require.Zero(t, s.Cost.StdDev)
	require.Equal(t, 3.0, s.Cost.Min)
	require.Equal(t, 3.0, s.Cost.Max)
	require.Equal(t, 6, s.Converged)
	require.Equal(t, 49.0, s.MeanConvergenceGeneration, "every run stays converged to the end")
	require.Zero(t, s.Stopped)
}

func TestRun_IndependentOfWorkers(t *testing.T) {
	cfg := cornerBatch(5, 1)
	cfg.Engine.Cities = nil
	cfg.Engine.CityCount = 12

	serial, err := batch.Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	cfg.Workers = 5
	parallel, err := batch.Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	for i := range serial.Runs {
		require.Equal(t, serial.Runs[i].Seed, parallel.Runs[i].Seed)
		require.Equal(t, serial.Runs[i].BestTour, parallel.Runs[i].BestTour)
		require.Equal(t, serial.Runs[i].BestCost, parallel.Runs[i].BestCost)
	}
	require.NotEqual(t, serial.Runs[0].Seed, serial.Runs[1].Seed)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := batch.Run(ctx, cornerBatch(4, 2), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 4, s.Stopped)
	for _, r := range s.Runs {
		require.Zero(t, r.Generations)
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, batch.DefaultConfig().Validate())

	cfg := batch.DefaultConfig()
	cfg.Repetitions = 0
	require.ErrorIs(t, cfg.Validate(), batch.ErrInvalidConfig)

	cfg = batch.DefaultConfig()
	cfg.Workers = -1
	require.ErrorIs(t, cfg.Validate(), batch.ErrInvalidConfig)

	cfg = batch.DefaultConfig()
	cfg.Engine.PopulationSize = 0
	err := cfg.Validate()
	require.ErrorIs(t, err, batch.ErrInvalidConfig)
	require.ErrorIs(t, err, evolution.ErrInvalidConfig)

	_, err = batch.Run(context.Background(), cfg, nil)
	require.ErrorIs(t, err, batch.ErrInvalidConfig)
}

func TestSummarize(t *testing.T) {
	runs := []batch.RunResult{
		{Repetition: 0, Result: evolution.Result{BestCost: 1, Rate: 10, Converged: true, ConvergenceGeneration: 100}},
		{Repetition: 1, Result: evolution.Result{BestCost: 2, Rate: 20}},
		{Repetition: 2, Result: evolution.Result{BestCost: 3, Rate: 30, Converged: true, ConvergenceGeneration: 300}},
		{Repetition: 3, Result: evolution.Result{BestCost: 4, Rate: 40, Outcome: evolution.OutcomeStopped}},
	}
	s, err := batch.Summarize(runs)
	require.NoError(t, err)

	require.Equal(t, 2.5, s.Cost.Mean)
	require.InDelta(t, math.Sqrt(1.25), s.Cost.StdDev, 1e-12)
	require.Equal(t, 2.5, s.Cost.Median)
	require.Equal(t, 3.5, s.Cost.P90)
	require.Equal(t, 1.0, s.Cost.Min)
	require.Equal(t, 4.0, s.Cost.Max)
	require.Equal(t, 25.0, s.MeanRate)
	require.Equal(t, 2, s.Converged)
	require.Equal(t, 200.0, s.MeanConvergenceGeneration)
	require.Equal(t, 1, s.Stopped)

	var buf bytes.Buffer
	require.NoError(t, s.WriteReport(&buf))
	require.Contains(t, buf.String(), "runs 4  converged 2  stopped 1")
	require.Contains(t, buf.String(), "mean 2.5")

	_, err = batch.Summarize(nil)
	require.ErrorIs(t, err, batch.ErrNoRuns)
}
