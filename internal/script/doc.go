// Package script replays keyboard input from Lua scripts.
//
// A script sees a single global table, mux:
//
//	mux.focus(n)      -- focus window n (1-based), as if its focus key was pressed
//	mux.type(s)       -- type every character of s ("\n" starts a new line)
//	mux.newline()     -- start a new line in the focused window
//	mux.key(name)     -- press a named key, e.g. "F2" or "Esc"
//	mux.active()      -- the focused window (1-based)
//	mux.line([n])     -- the current line of window n (default: focused)
//
// Every call becomes key events delivered through the same router as typed
// input. The Lua state only has the base, table, string and math libraries;
// file loading and require are removed.
package script
