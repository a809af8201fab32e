// Package mux implements the multiplexer core: four fixed quadrant windows
// on an 80×25 grid, focus-routed keyboard input, and per-tick rendering.
//
// The host drives the core through exactly two entry points, both called
// from a single goroutine:
//
//	m := mux.New(mux.WithPlotter(screen))
//	m.Key(ev) // once per decoded keystroke
//	m.Tick()  // once per display refresh
//
// Key mutates focus or the focused window's buffer and cursor. Tick erases
// the previously drawn live line, redraws every window border and title
// (highlighting the focused one), then redraws the focused window's
// current line. A newline additionally redraws the live line immediately.
//
// Nothing in this package returns an error: unmapped keys, undrawable
// characters and off-window coordinates all degrade to no-ops.
package mux
