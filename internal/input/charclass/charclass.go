// Package charclass decides which decoded characters may be drawn on the
// grid. Characters that fail the check are dropped by the input router.
package charclass

import (
	"fmt"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Classifier reports whether a character should be rendered.
type Classifier func(r rune) bool

// Drawable accepts printable runes that occupy exactly one grid cell.
// Wide (East Asian) and zero-width runes are rejected since every grid
// slot holds exactly one code point.
func Drawable(r rune) bool {
	if r == ' ' {
		return true
	}
	if !unicode.IsPrint(r) {
		return false
	}
	return runewidth.RuneWidth(r) == 1
}

// ASCII accepts printable 7-bit characters only.
func ASCII(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}

// Charset names accepted by ByName.
const (
	CharsetUnicode = "unicode"
	CharsetASCII   = "ascii"
)

// ByName returns the classifier for a charset name.
func ByName(name string) (Classifier, error) {
	switch name {
	case CharsetUnicode, "":
		return Drawable, nil
	case CharsetASCII:
		return ASCII, nil
	default:
		return nil, fmt.Errorf("unknown charset %q", name)
	}
}
