// SPDX-License-Identifier: MIT

package evolution

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// window is a fixed-capacity ring of the most recent samples. Statistics
// over it are order-independent, so values exposes the raw buffer.
type window struct {
	buf  []float64
	next int
	full bool
}

func newWindow(size int) *window {
	return &window{buf: make([]float64, 0, size)}
}

func (w *window) push(v float64) {
	if len(w.buf) < cap(w.buf) {
		w.buf = append(w.buf, v)
		w.full = len(w.buf) == cap(w.buf)

		return
	}
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
}

func (w *window) values() []float64 { return w.buf }

// convergence tracks the dispersion of the recent best costs.
type convergence struct {
	costs     *window
	threshold float64
	measure   Dispersion
}

// observe records the generation's best cost and reports whether the
// window is full and its dispersion is strictly below the threshold.
func (c *convergence) observe(best float64) bool {
	c.costs.push(best)
	if !c.costs.full {
		return false
	}

	// NaN < threshold is false, so a NaN dispersion never converges.
	return dispersion(c.costs.values(), c.measure) < c.threshold
}

// dispersion measures the spread of xs.
//
// Complexity: O(len(xs)).
func dispersion(xs []float64, measure Dispersion) float64 {
	if measure == LegacyOffsetStdDev {
		mean := stat.Mean(xs, nil)
		var (
			sum float64
			d   float64
		)
		for _, x := range xs {
			d = math.Abs(x - mean)
			sum += d * d
		}

		return math.Sqrt(-1 + sum)
	}
	_, std := stat.PopMeanStdDev(xs, nil)

	return std
}

// throughput tracks generations per second over the recent durations.
type throughput struct {
	nanos *window
}

func (t *throughput) observe(d time.Duration) {
	t.nanos.push(float64(d.Nanoseconds()))
}

// rate is len(window)·1e9 / Σduration. An empty or zero-duration window
// reports 0.
func (t *throughput) rate() float64 {
	xs := t.nanos.values()
	if len(xs) == 0 {
		return 0
	}
	sum := floats.Sum(xs)
	if sum <= 0 {
		return 0
	}

	return float64(len(xs)) * float64(time.Second) / sum
}
