package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/katalvlaran/evotsp/batch"
	"github.com/katalvlaran/evotsp/chromosome"
	"github.com/katalvlaran/evotsp/evolution"
	"github.com/katalvlaran/evotsp/operators"
	"github.com/katalvlaran/evotsp/view"
)

func runRun(ctx context.Context, args []string, stdout io.Writer) error {
	flags := newCommandFlags("run", false)
	polish := flags.fs.Bool("polish", false, "finish the best tour with open-path 2-opt")
	s, err := flags.resolve(args)
	if err != nil {
		return err
	}
	log, err := newLogger(s.logLevel, s.logFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	e, err := evolution.New(s.batch.Engine,
		evolution.WithLogger(log),
		evolution.WithObserver(evolution.ObserverFunc(func(status string) {
			fmt.Fprintln(stdout, status)
		})))
	if err != nil {
		return err
	}

	res, err := e.Run(ctx)
	if err != nil {
		return err
	}
	if err := writeResult(stdout, res); err != nil {
		return err
	}
	if !*polish {
		return nil
	}

	best := chromosome.FromPermutation(res.BestTour)
	moves, err := best.Polish(e.Cities(), operators.DefaultTwoOptOptions())
	if err != nil {
		return err
	}
	log.Info("best tour polished", zap.Int("moves", moves), zap.Float64("cost", best.Cost()))
	_, err = fmt.Fprintf(stdout, "polished cost %s after %d 2-opt moves\ntour %v\n",
		humanize.FtoaWithDigits(best.Cost(), 4), moves, best.Tour())

	return err
}

func writeResult(w io.Writer, res evolution.Result) error {
	conv := "not converged"
	if res.Converged {
		conv = fmt.Sprintf("converged at generation %d (first %d)",
			res.ConvergenceGeneration, res.FirstConvergenceGeneration)
	}
	_, err := fmt.Fprintf(w, "%s after %d generations: best cost %s, %s, %s gen/s\ntour %v\n",
		res.Outcome, res.Generations, humanize.FtoaWithDigits(res.BestCost, 4), conv,
		humanize.CommafWithDigits(res.Rate, 1), res.BestTour)
	if err == nil && res.CheckpointReached {
		_, err = fmt.Fprintf(w, "checkpoint cost %s\n", humanize.FtoaWithDigits(res.CheckpointCost, 4))
	}

	return err
}

func runBatch(ctx context.Context, args []string, stdout io.Writer) error {
	s, err := newCommandFlags("batch", true).resolve(args)
	if err != nil {
		return err
	}
	log, err := newLogger(s.logLevel, s.logFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	summary, err := batch.Run(ctx, s.batch, log)
	if err != nil {
		return err
	}

	return summary.WriteReport(stdout)
}

func runView(ctx context.Context, args []string) error {
	s, err := newCommandFlags("view", false).resolve(args)
	if err != nil {
		return err
	}
	// The terminal belongs to the UI; logs are dropped unless asked for
	// in JSON, which goes to stderr and can be redirected.
	log := zap.NewNop()
	if s.logFormat == "json" {
		if log, err = newLogger(s.logLevel, s.logFormat); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	feed := view.NewFeed(64)
	e, err := evolution.New(s.batch.Engine, evolution.WithLogger(log), evolution.WithObserver(feed))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	_, err = view.Watch(ctx, screen, e, feed, log)

	return err
}
