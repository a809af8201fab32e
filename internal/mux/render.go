package mux

import (
	"github.com/dshills/quadmux/internal/renderer/core"
	"github.com/dshills/quadmux/internal/ring"
	"github.com/dshills/quadmux/internal/window"
)

// BorderGlyph outlines every window.
const BorderGlyph = '.'

// Tick redraws the grid: erase the previous live line, draw every window
// outline, then draw the focused window's live line. It never changes
// window state.
func (m *Multiplexer) Tick() {
	m.clearCurrent()
	m.drawAllWindows()
	m.drawCurrent()
	m.stats.Ticks++
}

// liveCells calls fn with the grid position and buffer column of every
// live cell of the focused window's current row that falls inside the
// window. Columns start at the left edge and wrap around the grid width;
// the right border column and anything past it are clipped, as are rows
// below the window.
func (m *Multiplexer) liveCells(fn func(x, y, col int)) {
	id := m.registry.Active()
	rect := m.registry.RectOf(id)
	w := &m.windows[id]

	y := rect.Top + w.CursorRow()
	if y > rect.Bottom {
		return
	}

	for col := range w.LiveColumns() {
		x := ring.Add(rect.Left, col, core.Width)
		if x < rect.Left || x >= rect.Right {
			continue
		}
		fn(x, y, col)
	}
}

// clearCurrent blanks the focused window's live cells.
func (m *Multiplexer) clearCurrent() {
	blank := core.NewCell(' ', m.theme.Muted)
	m.liveCells(func(x, y, _ int) {
		m.plot.SetCell(x, y, blank)
	})
}

// drawCurrent plots the focused window's live cells from its buffer.
func (m *Multiplexer) drawCurrent() {
	id := m.registry.Active()
	w := &m.windows[id]
	row := w.CursorRow()
	m.liveCells(func(x, y, col int) {
		m.plot.SetCell(x, y, core.NewCell(w.At(row, col), m.theme.Content))
	})
}

// drawAllWindows outlines every window and centers its title on the top
// border. The focused window uses the active border colors.
func (m *Multiplexer) drawAllWindows() {
	active := m.registry.Active()
	for id := range m.registry.IDs() {
		colors := m.theme.Border
		if id == active {
			colors = m.theme.ActiveBorder
		}
		rect := m.registry.RectOf(id)
		m.drawBorder(rect, colors)
		m.drawTitle(rect, m.titles[id], colors)
	}
}

func (m *Multiplexer) drawBorder(rect window.Rect, colors core.ColorPair) {
	cell := core.NewCell(BorderGlyph, colors)
	for x := rect.Left; x <= rect.Right; x++ {
		m.plot.SetCell(x, rect.Top, cell)
		m.plot.SetCell(x, rect.Bottom, cell)
	}
	for y := rect.Top; y <= rect.Bottom; y++ {
		m.plot.SetCell(rect.Left, y, cell)
		m.plot.SetCell(rect.Right, y, cell)
	}
}

func (m *Multiplexer) drawTitle(rect window.Rect, title string, colors core.ColorPair) {
	runes := []rune(title)
	x := rect.Left + max(0, (rect.Width()-len(runes))/2)
	for _, r := range runes {
		if x > rect.Right {
			return
		}
		m.plot.SetCell(x, rect.Top, core.NewCell(r, colors))
		x++
	}
}
