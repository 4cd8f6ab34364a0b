// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"

	"github.com/katalvlaran/evotsp/evolution"
)

// ErrNoRuns is returned when there is nothing to summarise.
var ErrNoRuns = errors.New("batch: no runs")

// Distribution describes a sample of best costs.
type Distribution struct {
	Mean   float64
	StdDev float64 // population standard deviation
	Median float64
	P90    float64
	Min    float64
	Max    float64
}

// Summary aggregates a batch.
type Summary struct {
	// Runs lists every repetition in repetition order.
	Runs []RunResult

	Cost Distribution

	// MeanRate is the mean of the per-run generation rates.
	MeanRate float64

	// MeanConvergenceGeneration averages ConvergenceGeneration, the last
	// converged generation of a run, over the Converged runs only; zero
	// when none converged.
	MeanConvergenceGeneration float64
	Converged                 int

	// Stopped counts runs that returned before their generation budget.
	Stopped int
}

// Summarize aggregates runs.
func Summarize(runs []RunResult) (Summary, error) {
	if len(runs) == 0 {
		return Summary{}, ErrNoRuns
	}

	var (
		s     = Summary{Runs: runs}
		costs = make(stats.Float64Data, 0, len(runs))
		rates = make(stats.Float64Data, 0, len(runs))
		convs = make(stats.Float64Data, 0, len(runs))
	)
	for _, r := range runs {
		costs = append(costs, r.BestCost)
		rates = append(rates, r.Rate)
		if r.Converged {
			convs = append(convs, float64(r.ConvergenceGeneration))
		}
		if r.Outcome == evolution.OutcomeStopped {
			s.Stopped++
		}
	}
	s.Converged = len(convs)

	var err error
	if s.Cost, err = describe(costs); err != nil {
		return s, err
	}
	if s.MeanRate, err = stats.Mean(rates); err != nil {
		return s, fmt.Errorf("batch: mean rate: %w", err)
	}
	if len(convs) > 0 {
		if s.MeanConvergenceGeneration, err = stats.Mean(convs); err != nil {
			return s, fmt.Errorf("batch: mean convergence: %w", err)
		}
	}

	return s, nil
}

func describe(xs stats.Float64Data) (Distribution, error) {
	var (
		d   Distribution
		err error
	)
	steps := []struct {
		name string
		dst  *float64
		fn   func(stats.Float64Data) (float64, error)
	}{
		{"mean", &d.Mean, stats.Mean},
		{"stddev", &d.StdDev, stats.StandardDeviationPopulation},
		{"median", &d.Median, stats.Median},
		{"p90", &d.P90, func(in stats.Float64Data) (float64, error) { return stats.Percentile(in, 90) }},
		{"min", &d.Min, stats.Min},
		{"max", &d.Max, stats.Max},
	}
	for _, st := range steps {
		if *st.dst, err = st.fn(xs); err != nil {
			return d, fmt.Errorf("batch: cost %s: %w", st.name, err)
		}
	}

	return d, nil
}

// WriteReport prints a human-readable summary to w.
func (s Summary) WriteReport(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"runs %d  converged %d  stopped %d\n"+
			"cost  mean %s  stddev %s  median %s  p90 %s  min %s  max %s\n"+
			"rate  mean %s gen/s  convergence at generation %s on average\n",
		len(s.Runs), s.Converged, s.Stopped,
		ftoa(s.Cost.Mean), ftoa(s.Cost.StdDev), ftoa(s.Cost.Median),
		ftoa(s.Cost.P90), ftoa(s.Cost.Min), ftoa(s.Cost.Max),
		humanize.CommafWithDigits(s.MeanRate, 1), humanize.CommafWithDigits(s.MeanConvergenceGeneration, 1))

	return err
}

func ftoa(f float64) string { return humanize.FtoaWithDigits(f, 4) }
