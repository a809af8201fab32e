package key

import (
	"fmt"
	"strings"
)

// Code identifies a non-printable key.
type Code uint16

const (
	// None represents no key.
	None Code = iota

	Escape
	Enter
	Tab
	Backspace
	Delete
	Insert
	Home
	End
	PageUp
	PageDown

	Up
	Down
	Left
	Right

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// CtrlQ is the host's quit chord.
	CtrlQ
)

var codeNames = map[Code]string{
	None:      "None",
	Escape:    "Esc",
	Enter:     "Enter",
	Tab:       "Tab",
	Backspace: "Backspace",
	Delete:    "Delete",
	Insert:    "Insert",
	Home:      "Home",
	End:       "End",
	PageUp:    "PageUp",
	PageDown:  "PageDown",
	Up:        "Up",
	Down:      "Down",
	Left:      "Left",
	Right:     "Right",
	F1:        "F1",
	F2:        "F2",
	F3:        "F3",
	F4:        "F4",
	F5:        "F5",
	F6:        "F6",
	F7:        "F7",
	F8:        "F8",
	F9:        "F9",
	F10:       "F10",
	F11:       "F11",
	F12:       "F12",
	CtrlQ:     "Ctrl+Q",
}

// aliases accepted by ParseName in addition to the canonical names.
var aliases = map[string]Code{
	"escape":    Escape,
	"return":    Enter,
	"cr":        Enter,
	"bs":        Backspace,
	"del":       Delete,
	"ins":       Insert,
	"pgup":      PageUp,
	"pgdn":      PageDown,
	"pagedown":  PageDown,
	"c-q":       CtrlQ,
	"ctrlq":     CtrlQ,
	"ctrl-q":    CtrlQ,
	"<c-q>":     CtrlQ,
	"<esc>":     Escape,
	"<enter>":   Enter,
	"<cr>":      Enter,
	"<tab>":     Tab,
	"backspace": Backspace,
}

// String returns the canonical key name.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// IsFunction returns true for F1 through F12.
func (c Code) IsFunction() bool {
	return c >= F1 && c <= F12
}

// ParseName parses a key name such as "F2", "Esc" or "Ctrl+Q".
// Matching is case-insensitive; angle-bracket forms like "<F2>" are accepted.
func ParseName(name string) (Code, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return None, fmt.Errorf("empty key name")
	}
	if c, ok := aliases[s]; ok {
		return c, nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
	for c, n := range codeNames {
		if c != None && strings.ToLower(n) == s {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown key name %q", name)
}
