// Package key defines the decoded keyboard event consumed by the
// multiplexer.
//
// A decoded key is a tagged value: either a raw non-printable key code
// (function keys, arrows, control chords) or a decoded character. The
// terminal backend produces events, the input router pattern-matches on
// the tag.
//
//	ev := key.Char('a')      // decoded character
//	ev := key.Raw(key.F2)    // non-printable key code
//	code, _ := key.ParseName("F3")
package key
