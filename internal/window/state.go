package window

import (
	"iter"

	"github.com/dshills/quadmux/internal/renderer/core"
	"github.com/dshills/quadmux/internal/ring"
)

// Buffer dimensions match the grid.
const (
	Width  = core.Width
	Height = core.Height
)

// DefaultFiller is the placeholder glyph for unused buffer cells.
const DefaultFiller = '_'

// State is one window's text buffer and write cursor.
//
// Invariants: 0 ≤ cursorRow < Height, 0 ≤ nextSlot < Width,
// 0 ≤ visibleLength ≤ Width. The zero State is not usable; use NewState.
type State struct {
	buffer        [Height][Width]rune
	filler        rune
	cursorRow     ring.Index
	nextSlot      ring.Index
	visibleLength int
}

// NewState creates a window state with every cell set to filler, the
// cursor on row 0 and nothing live yet.
func NewState(filler rune) State {
	s := State{
		filler:    filler,
		cursorRow: ring.New(0, Height),
		nextSlot:  ring.New(0, Width),
	}
	for row := range s.buffer {
		s.clearRow(row)
	}
	return s
}

// AppendChar writes c at the cursor and advances the write slot.
//
// When the slot lands on the last column the cursor moves to the next row
// and the live length resets to zero, but the slot itself stays on the
// last column: the next character is written there on the new row and the
// slot then wraps to zero.
func (s *State) AppendChar(c rune) {
	s.buffer[s.cursorRow.Int()][s.nextSlot.Int()] = c
	s.nextSlot = s.nextSlot.Next()
	s.visibleLength = min(s.visibleLength+1, Width)

	if s.nextSlot.Last() {
		s.cursorRow = s.cursorRow.Next()
		s.visibleLength = 0
	}
}

// Newline moves the cursor to the start of the next row and resets that
// row to the filler. There is no scrollback: after the last row the cursor
// wraps to row 0 and its old content is discarded.
func (s *State) Newline() {
	s.cursorRow = s.cursorRow.Next()
	s.nextSlot = s.nextSlot.Reset()
	s.visibleLength = 1
	s.clearRow(s.cursorRow.Int())
}

func (s *State) clearRow(row int) {
	for col := range s.buffer[row] {
		s.buffer[row][col] = s.filler
	}
}

// CursorRow returns the row currently being written.
func (s *State) CursorRow() int {
	return s.cursorRow.Int()
}

// NextSlot returns the column where the next character lands.
func (s *State) NextSlot() int {
	return s.nextSlot.Int()
}

// VisibleLength returns how many columns of the current row are live.
func (s *State) VisibleLength() int {
	return s.visibleLength
}

// Filler returns the placeholder glyph.
func (s *State) Filler() rune {
	return s.filler
}

// At returns the buffered character at (row, col). Coordinates wrap.
func (s *State) At(row, col int) rune {
	return s.buffer[ring.Add(row, 0, Height)][ring.Add(col, 0, Width)]
}

// Row returns a copy of one buffer row as a string.
func (s *State) Row(row int) string {
	line := s.buffer[ring.Add(row, 0, Height)]
	return string(line[:])
}

// LiveColumns yields the buffer column offsets of the live region of the
// current row, 0 through VisibleLength-1.
func (s *State) LiveColumns() iter.Seq[int] {
	n := s.visibleLength
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
