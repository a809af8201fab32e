package mux

import "fmt"

// Stats counts what the multiplexer has processed.
type Stats struct {
	Ticks         uint64
	Keys          uint64
	Appended      uint64
	Dropped       uint64
	Newlines      uint64
	FocusSwitches uint64
	IgnoredKeys   uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("ticks=%d keys=%d appended=%d dropped=%d newlines=%d focus=%d ignored=%d",
		s.Ticks, s.Keys, s.Appended, s.Dropped, s.Newlines, s.FocusSwitches, s.IgnoredKeys)
}
