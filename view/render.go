// SPDX-License-Identifier: MIT

// Package view draws the evolving best tour on a terminal with tcell.
//
// Cities live in the unit square; Project maps them onto the character
// grid above a one-row status line. Tour edges are rasterised with
// Bresenham's line algorithm.
package view

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/evotsp/evolution"
	"github.com/katalvlaran/evotsp/geom"
)

// Glyphs used by the Renderer.
const (
	CityRune  = 'o'
	StartRune = 'S'
	EndRune   = 'E'
	EdgeRune  = '·'
)

// Cell is a character-grid position.
type Cell struct{ X, Y int }

// Frame is everything the Renderer needs for one redraw.
type Frame struct {
	Cities geom.Points
	Tour   []int
	Status string
	Notice string
}

// FrameOf builds a frame from an engine snapshot.
func FrameOf(cities geom.Points, s evolution.Snapshot) Frame {
	return Frame{Cities: cities, Tour: s.BestTour, Status: s.Status}
}

// Project maps a unit-square point onto a width×height grid. Coordinates
// outside [0,1] are clamped to the border.
func Project(p geom.Point, width, height int) Cell {
	return Cell{X: scale(p.X, width), Y: scale(p.Y, height)}
}

func scale(v float64, cells int) int {
	if cells <= 1 {
		return 0
	}
	v = math.Max(0, math.Min(1, v))

	return int(math.Round(v * float64(cells-1)))
}

// Renderer paints frames onto a screen.
type Renderer struct {
	screen tcell.Screen

	Edge   tcell.Style
	City   tcell.Style
	Start  tcell.Style
	Status tcell.Style
	Notice tcell.Style
}

// NewRenderer returns a renderer with the default palette.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		Edge:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
		City:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
		Start:  tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		Status: tcell.StyleDefault.Reverse(true),
		Notice: tcell.StyleDefault.Foreground(tcell.ColorPurple),
	}
}

// Draw clears the screen, paints f and shows the result. The bottom row
// holds the status line; the row above it, when f.Notice is set, the
// notice.
func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	area := height - 1

	if len(f.Tour) > 0 && area > 0 {
		var (
			prev = Project(f.Cities[f.Tour[0]], width, area)
			next Cell
			i    int
		)
		for i = 1; i < len(f.Tour); i++ {
			next = Project(f.Cities[f.Tour[i]], width, area)
			for _, c := range Line(prev, next) {
				r.screen.SetContent(c.X, c.Y, EdgeRune, nil, r.Edge)
			}
			prev = next
		}
		for _, p := range f.Cities {
			c := Project(p, width, area)
			r.screen.SetContent(c.X, c.Y, CityRune, nil, r.City)
		}
		last := Project(f.Cities[f.Tour[len(f.Tour)-1]], width, area)
		r.screen.SetContent(last.X, last.Y, EndRune, nil, r.Start)
		first := Project(f.Cities[f.Tour[0]], width, area)
		r.screen.SetContent(first.X, first.Y, StartRune, nil, r.Start)
	}

	if f.Notice != "" && area > 0 {
		r.text(0, area-1, f.Notice, r.Notice, width)
	}
	r.text(0, height-1, f.Status, r.Status, width)
	r.screen.Show()
}

func (r *Renderer) text(x, y int, s string, style tcell.Style, width int) {
	for _, ch := range s {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Line returns the cells of the segment from a to b inclusive, in order,
// using integer Bresenham stepping in all octants.
//
// Complexity: O(max(|dx|, |dy|)).
func Line(a, b Cell) []Cell {
	var (
		dx    = abs(b.X - a.X)
		dy    = -abs(b.Y - a.Y)
		sx    = sign(b.X - a.X)
		sy    = sign(b.Y - a.Y)
		err   = dx + dy
		cells = make([]Cell, 0, max(dx, -dy)+1)
		c     = a
		e2    int
	)
	for {
		cells = append(cells, c)
		if c == b {
			return cells
		}
		e2 = 2 * err
		if e2 >= dy {
			err += dy
			c.X += sx
		}
		if e2 <= dx {
			err += dx
			c.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}

	return 0
}
