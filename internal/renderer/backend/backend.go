// Package backend provides the display surface the multiplexer plots onto
// and the source of decoded keyboard events.
package backend

import (
	"strings"
	"sync"

	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/renderer/core"
)

// EventType identifies the type of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a backend event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current display dimensions.
	Size() (width, height int)

	// SetCell plots a single cell at the given position.
	// Positions outside the display are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the display.
	GetCell(x, y int) core.Cell

	// Clear blanks the entire display.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// Beep produces an audible or visual bell.
	Beep()
}

// Plot is a single recorded SetCell call.
type Plot struct {
	X, Y int
	Cell core.Cell
}

// NullBackend is an in-memory backend for tests and headless rendering.
// It records every SetCell call so callers can inspect exactly what was
// plotted, including out-of-range attempts.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	plots         []Plot
	shows         int
	beeps         int
	events        chan Event

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		stop:   make(chan struct{}),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	b.plots = nil

	b.mu.Lock()
	if b.stopped {
		b.stop = make(chan struct{})
		b.stopped = false
	}
	b.mu.Unlock()
	return nil
}

// Shutdown wakes every goroutine blocked in PollEvent with an interrupt,
// even when the event queue is full. PollEvent keeps returning interrupts
// until the next Init.
func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.stopped {
		close(b.stop)
		b.stopped = true
	}
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.plots = append(b.plots, Plot{X: x, Y: y, Cell: cell})
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Clear() {
	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() { b.shows++ }

func (b *NullBackend) PollEvent() Event {
	b.mu.Lock()
	stop := b.stop
	b.mu.Unlock()

	select {
	case ev := <-b.events:
		return ev
	case <-stop:
		return Event{Type: EventInterrupt}
	}
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) Beep() { b.beeps++ }

// Plots returns every SetCell call since Init or the last ResetPlots.
func (b *NullBackend) Plots() []Plot {
	return b.plots
}

// ResetPlots forgets recorded plots without touching the grid.
func (b *NullBackend) ResetPlots() {
	b.plots = nil
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int { return b.shows }

// Beeps returns how many times Beep was called.
func (b *NullBackend) Beeps() int { return b.beeps }

// Line returns row y of the grid as text.
func (b *NullBackend) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String renders the whole grid as newline-separated rows.
func (b *NullBackend) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.WriteString(b.Line(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}
