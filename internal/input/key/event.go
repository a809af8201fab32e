package key

import (
	"fmt"
	"unicode"
)

// Kind tags which variant an Event holds.
type Kind uint8

const (
	// KindRaw is a non-printable key code.
	KindRaw Kind = iota
	// KindChar is a decoded character.
	KindChar
)

// Newline is the line-terminator character.
const Newline = '\n'

// Event is a single decoded keystroke.
type Event struct {
	Kind Kind

	// Code is set for KindRaw events.
	Code Code

	// Rune is set for KindChar events.
	Rune rune
}

// Raw creates an event for a non-printable key code.
func Raw(c Code) Event {
	return Event{Kind: KindRaw, Code: c}
}

// Char creates an event for a decoded character.
func Char(r rune) Event {
	return Event{Kind: KindChar, Rune: r}
}

// IsRaw returns true if the event carries a key code.
func (e Event) IsRaw() bool {
	return e.Kind == KindRaw
}

// IsChar returns true if the event carries a decoded character.
func (e Event) IsChar() bool {
	return e.Kind == KindChar
}

// IsNewline returns true for the decoded line terminator.
func (e Event) IsNewline() bool {
	return e.Kind == KindChar && e.Rune == Newline
}

// String returns a readable form: the key name for raw events, the quoted
// character otherwise.
func (e Event) String() string {
	if e.Kind == KindRaw {
		return e.Code.String()
	}
	if unicode.IsPrint(e.Rune) {
		return fmt.Sprintf("%q", e.Rune)
	}
	return fmt.Sprintf("%U", e.Rune)
}

// FromString converts text into one character event per code point.
func FromString(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, Char(r))
	}
	return events
}
