package window

import (
	"strings"
	"testing"
)

func typeN(s *State, n int, r rune) {
	for i := 0; i < n; i++ {
		s.AppendChar(r)
	}
}

func TestNewStateIsBlank(t *testing.T) {
	s := NewState(DefaultFiller)

	if s.CursorRow() != 0 || s.NextSlot() != 0 || s.VisibleLength() != 0 {
		t.Errorf("unexpected initial cursor: row=%d slot=%d len=%d",
			s.CursorRow(), s.NextSlot(), s.VisibleLength())
	}
	want := strings.Repeat("_", Width)
	for row := 0; row < Height; row++ {
		if got := s.Row(row); got != want {
			t.Fatalf("row %d = %q, want all filler", row, got)
		}
	}
}

func TestAppendShortLine(t *testing.T) {
	for k := 0; k < Width-1; k++ {
		s := NewState(DefaultFiller)
		typeN(&s, k, 'x')

		if s.VisibleLength() != k {
			t.Fatalf("k=%d: visibleLength = %d", k, s.VisibleLength())
		}
		if s.NextSlot() != k {
			t.Fatalf("k=%d: nextSlot = %d", k, s.NextSlot())
		}
		if s.CursorRow() != 0 {
			t.Fatalf("k=%d: cursorRow moved to %d", k, s.CursorRow())
		}
	}
}

func TestAppendWritesAtCursor(t *testing.T) {
	s := NewState(DefaultFiller)
	s.AppendChar('A')

	if s.At(0, 0) != 'A' {
		t.Errorf("expected 'A' at (0,0), got %q", s.At(0, 0))
	}
	if s.NextSlot() != 1 || s.VisibleLength() != 1 {
		t.Errorf("expected slot=1 len=1, got slot=%d len=%d", s.NextSlot(), s.VisibleLength())
	}
	if s.At(0, 1) != DefaultFiller {
		t.Error("neighbouring cell should still be filler")
	}
}

func TestAppendRowAdvanceOneShortOfFull(t *testing.T) {
	s := NewState(DefaultFiller)
	typeN(&s, Width-2, 'a')
	if s.CursorRow() != 0 {
		t.Fatalf("row advanced too early")
	}

	s.AppendChar('b')

	if s.CursorRow() != 1 {
		t.Errorf("expected row 1 after %d chars, got %d", Width-1, s.CursorRow())
	}
	if s.VisibleLength() != 0 {
		t.Errorf("expected visibleLength 0, got %d", s.VisibleLength())
	}
	if s.NextSlot() != Width-1 {
		t.Errorf("nextSlot should stay at %d, got %d", Width-1, s.NextSlot())
	}
	if s.At(0, Width-2) != 'b' {
		t.Errorf("last char should land on row 0 column %d", Width-2)
	}

	s.AppendChar('c')

	if s.At(1, Width-1) != 'c' {
		t.Errorf("next char should land on new row at column %d, got %q", Width-1, s.At(1, Width-1))
	}
	if s.NextSlot() != 0 {
		t.Errorf("nextSlot should wrap to 0, got %d", s.NextSlot())
	}
	if s.VisibleLength() != 1 || s.CursorRow() != 1 {
		t.Errorf("expected row=1 len=1, got row=%d len=%d", s.CursorRow(), s.VisibleLength())
	}
}

func TestAppendExactlyOneAdvance(t *testing.T) {
	s := NewState(DefaultFiller)
	advances := 0
	prev := s.CursorRow()
	for i := 0; i < Width-1; i++ {
		s.AppendChar('z')
		if s.CursorRow() != prev {
			advances++
			prev = s.CursorRow()
		}
	}
	if advances != 1 {
		t.Errorf("expected exactly one row advance, got %d", advances)
	}
}

func TestVisibleLengthCapped(t *testing.T) {
	s := NewState(DefaultFiller)
	for i := 0; i < 10*Width; i++ {
		s.AppendChar('q')
		if v := s.VisibleLength(); v < 0 || v > Width {
			t.Fatalf("visibleLength %d out of range after %d chars", v, i+1)
		}
		if n := s.NextSlot(); n < 0 || n >= Width {
			t.Fatalf("nextSlot %d out of range", n)
		}
		if r := s.CursorRow(); r < 0 || r >= Height {
			t.Fatalf("cursorRow %d out of range", r)
		}
	}
}

func TestNewline(t *testing.T) {
	s := NewState(DefaultFiller)
	typeN(&s, 5, 'h')
	s.Newline()

	if s.CursorRow() != 1 {
		t.Errorf("expected row 1, got %d", s.CursorRow())
	}
	if s.NextSlot() != 0 || s.VisibleLength() != 1 {
		t.Errorf("expected slot=0 len=1, got slot=%d len=%d", s.NextSlot(), s.VisibleLength())
	}
	if s.Row(1) != strings.Repeat("_", Width) {
		t.Errorf("new row should be all filler, got %q", s.Row(1))
	}
	if !strings.HasPrefix(s.Row(0), "hhhhh_") {
		t.Errorf("previous row should be kept, got %q", s.Row(0))
	}
}

func TestNewlineWrapsAndOverwrites(t *testing.T) {
	s := NewState(DefaultFiller)
	s.AppendChar('o')

	for i := 0; i < Height-1; i++ {
		s.Newline()
	}
	if s.CursorRow() != Height-1 {
		t.Fatalf("expected last row, got %d", s.CursorRow())
	}
	if s.At(0, 0) != 'o' {
		t.Fatal("row 0 should still hold its content")
	}

	s.Newline()

	if s.CursorRow() != 0 {
		t.Errorf("expected wrap to row 0, got %d", s.CursorRow())
	}
	if s.At(0, 0) != DefaultFiller {
		t.Error("wrapping onto row 0 should discard its old content")
	}
}

func TestNewlineClearsStaleRow(t *testing.T) {
	s := NewState('.')
	s.Newline()
	typeN(&s, 3, 'x')
	for i := 0; i < Height; i++ {
		s.Newline()
	}
	if s.CursorRow() != 1 {
		t.Fatalf("expected row 1, got %d", s.CursorRow())
	}
	if s.Row(1) != strings.Repeat(".", Width) {
		t.Errorf("row should be reset to custom filler, got %q", s.Row(1))
	}
	if s.Filler() != '.' {
		t.Errorf("Filler() = %q", s.Filler())
	}
}

func TestLiveColumns(t *testing.T) {
	s := NewState(DefaultFiller)
	typeN(&s, 3, 'x')

	var cols []int
	for c := range s.LiveColumns() {
		cols = append(cols, c)
	}
	if len(cols) != 3 || cols[0] != 0 || cols[2] != 2 {
		t.Errorf("LiveColumns = %v", cols)
	}

	for range s.LiveColumns() {
		break
	}
}

func TestAtWraps(t *testing.T) {
	s := NewState(DefaultFiller)
	s.AppendChar('w')
	if s.At(Height, Width) != 'w' {
		t.Error("At should wrap coordinates")
	}
}
