// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/katalvlaran/evotsp/evolution"
)

// DefaultRefresh is the redraw period of Watch.
const DefaultRefresh = 50 * time.Millisecond

// Feed forwards observer status lines to the UI goroutine. It never blocks
// the engine: lines that find the buffer full are dropped.
type Feed struct {
	lines chan string
}

// NewFeed returns a feed buffering up to size lines.
func NewFeed(size int) *Feed {
	return &Feed{lines: make(chan string, max(size, 1))}
}

// OnUpdate implements evolution.Observer.
func (f *Feed) OnUpdate(status string) {
	select {
	case f.lines <- status:
	default:
	}
}

// Lines exposes the receive side.
func (f *Feed) Lines() <-chan string { return f.lines }

// Watch runs e on a worker goroutine and redraws the screen from its
// snapshots until the user quits (q, Esc or Ctrl-C) or ctx is done; either
// stops the engine. When the engine finishes by itself the last frame stays
// up until the user quits. feed may be nil. The returned Result is the
// engine's.
func Watch(ctx context.Context, screen tcell.Screen, e *evolution.Engine, feed *Feed, log *zap.Logger) (evolution.Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		renderer = NewRenderer(screen)
		cities   = e.Cities()
		events   = make(chan tcell.Event, 16)
		done     = make(chan struct{})
		quit     = make(chan struct{})
		ticker   = time.NewTicker(DefaultRefresh)
		wg       conc.WaitGroup
		res      evolution.Result
		runErr   error
		notice   string
		lines    <-chan string
	)
	defer ticker.Stop()
	if feed != nil {
		lines = feed.Lines()
	}

	wg.Go(func() {
		defer close(done)
		res, runErr = e.Run(ctx)
	})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	redraw := func() {
		f := FrameOf(cities, e.Snapshot())
		f.Notice = notice
		renderer.Draw(f)
	}
	redraw()

	finish := func() (evolution.Result, error) {
		close(quit)
		e.Stop()
		wg.Wait()
		redraw()
		log.Info("view closed", zap.Stringer("state", e.State()), zap.Int("generations", res.Generations))

		return res, runErr
	}

	for {
		select {
		case <-ctx.Done():
			return finish()
		case <-done:
			redraw()
			done = nil
		case s := <-lines:
			if !isGenerationLine(s) {
				notice = s
			}
		case <-ticker.C:
			redraw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return finish()
				}
			case *tcell.EventResize:
				screen.Sync()
				redraw()
			}
		}
	}
}

func isGenerationLine(s string) bool { return strings.HasPrefix(s, "Generation ") }
