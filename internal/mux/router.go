package mux

import (
	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/window"
)

// Key routes one decoded keystroke. Focus-switch codes change the focused
// window; the line terminator starts a new line in the focused window and
// redraws it at once; drawable characters are appended to the focused
// window. Everything else is ignored.
func (m *Multiplexer) Key(ev key.Event) {
	m.stats.Keys++

	switch ev.Kind {
	case key.KindRaw:
		m.handleRaw(ev.Code)
	case key.KindChar:
		m.handleChar(ev.Rune)
	}
}

func (m *Multiplexer) handleRaw(code key.Code) {
	id, ok := m.focusTarget(code)
	if !ok {
		m.stats.IgnoredKeys++
		return
	}

	prev := m.registry.Active()
	if m.registry.SetActive(id) {
		m.stats.FocusSwitches++
		m.log.Debug("focus %s -> %s", prev, id)
	}
}

// focusTarget returns the window a key code focuses, if any.
func (m *Multiplexer) focusTarget(code key.Code) (window.ID, bool) {
	if code == key.None {
		return 0, false
	}
	for i, k := range m.focusKeys {
		if k == code {
			return window.ID(i), true
		}
	}
	return 0, false
}

func (m *Multiplexer) handleChar(c rune) {
	w := &m.windows[m.registry.Active()]

	if c == key.Newline {
		w.Newline()
		m.stats.Newlines++
		m.drawCurrent()
		return
	}

	if !m.drawable(c) {
		m.stats.Dropped++
		m.log.Debug("dropped undrawable %U", c)
		return
	}

	w.AppendChar(c)
	m.stats.Appended++
}
