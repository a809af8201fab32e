package mux

import (
	"github.com/dshills/quadmux/internal/input/charclass"
	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/logging"
	"github.com/dshills/quadmux/internal/renderer/core"
	"github.com/dshills/quadmux/internal/window"
)

// Plotter writes one cell of the display grid at absolute coordinates.
// backend.Backend satisfies it.
type Plotter interface {
	SetCell(x, y int, cell core.Cell)
}

type discardPlotter struct{}

func (discardPlotter) SetCell(int, int, core.Cell) {}

// DefaultFocusKeys maps F1..F4 onto windows 0..3.
var DefaultFocusKeys = [window.Count]key.Code{key.F1, key.F2, key.F3, key.F4}

// Multiplexer owns the window registry and every window's state.
// It is not safe for concurrent use; the host calls Key and Tick from one
// goroutine.
type Multiplexer struct {
	registry *window.Registry
	windows  [window.Count]window.State

	plot      Plotter
	drawable  charclass.Classifier
	theme     core.Theme
	focusKeys [window.Count]key.Code
	titles    [window.Count]string
	log       *logging.Logger

	stats Stats
}

type options struct {
	plot      Plotter
	drawable  charclass.Classifier
	theme     core.Theme
	focusKeys [window.Count]key.Code
	filler    rune
	logger    *logging.Logger
}

// Option configures a Multiplexer.
type Option func(*options)

// WithPlotter sets the display the multiplexer draws on.
// Without one, drawing is discarded.
func WithPlotter(p Plotter) Option {
	return func(o *options) {
		if p != nil {
			o.plot = p
		}
	}
}

// WithClassifier sets the drawability check applied to typed characters.
func WithClassifier(c charclass.Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.drawable = c
		}
	}
}

// WithTheme sets the color pairs used for drawing.
func WithTheme(t core.Theme) Option {
	return func(o *options) {
		o.theme = t
	}
}

// WithFocusKeys sets the key code that focuses each window. The key names
// also become the window titles.
func WithFocusKeys(keys [window.Count]key.Code) Option {
	return func(o *options) {
		o.focusKeys = keys
	}
}

// WithFiller sets the placeholder glyph for unused buffer cells.
func WithFiller(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.filler = r
		}
	}
}

// WithLogger sets the logger. Focus switches and dropped input are logged
// at debug level.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a multiplexer with the quadrant layout, every window cleared
// to the filler and focus on window 0.
func New(opts ...Option) *Multiplexer {
	o := options{
		plot:      discardPlotter{},
		drawable:  charclass.Drawable,
		theme:     core.DefaultTheme(),
		focusKeys: DefaultFocusKeys,
		filler:    window.DefaultFiller,
		logger:    logging.Null(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Multiplexer{
		registry:  window.NewRegistry(window.QuadrantLayout(core.Width, core.Height)),
		plot:      o.plot,
		drawable:  o.drawable,
		theme:     o.theme,
		focusKeys: o.focusKeys,
		log:       o.logger.WithComponent("mux"),
	}
	for id := range m.registry.IDs() {
		m.windows[id] = window.NewState(o.filler)
		m.titles[id] = o.focusKeys[id].String()
	}
	return m
}

// Active returns the focused window.
func (m *Multiplexer) Active() window.ID {
	return m.registry.Active()
}

// Rect returns a window's rectangle.
func (m *Multiplexer) Rect(id window.ID) window.Rect {
	return m.registry.RectOf(id)
}

// Window returns a snapshot of a window's state. The second result is
// false for invalid ids.
func (m *Multiplexer) Window(id window.ID) (window.State, bool) {
	if !id.Valid() {
		return window.State{}, false
	}
	return m.windows[id], true
}

// Title returns the title drawn on a window's top border.
func (m *Multiplexer) Title(id window.ID) string {
	if !id.Valid() {
		return ""
	}
	return m.titles[id]
}

// FocusKey returns the key code that focuses a window, or key.None for
// invalid ids.
func (m *Multiplexer) FocusKey(id window.ID) key.Code {
	if !id.Valid() {
		return key.None
	}
	return m.focusKeys[id]
}

// Theme returns the current theme.
func (m *Multiplexer) Theme() core.Theme {
	return m.theme
}

// SetTheme replaces the colors used from the next draw on.
// Window state is untouched.
func (m *Multiplexer) SetTheme(t core.Theme) {
	m.theme = t
}

// Stats returns the event counters.
func (m *Multiplexer) Stats() Stats {
	return m.stats
}
