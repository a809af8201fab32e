package window

import (
	"fmt"
	"iter"

	"github.com/dshills/quadmux/internal/renderer/core"
)

// Count is the number of windows.
const Count = 4

// ID identifies a window, in [0, Count).
type ID int

// Valid reports whether id names an existing window.
func (id ID) Valid() bool {
	return id >= 0 && id < Count
}

func (id ID) String() string {
	return fmt.Sprintf("window%d", int(id))
}

// Rect is a window's region of the grid, inclusive bounds.
type Rect = core.ScreenRect

// QuadrantLayout tiles a width×height grid into top-left, top-right,
// bottom-left and bottom-right windows split at width/2 and height/2.
func QuadrantLayout(width, height int) [Count]Rect {
	midX, midY := width/2, height/2
	return [Count]Rect{
		core.NewScreenRect(0, 0, midY-1, midX-1),
		core.NewScreenRect(0, midX, midY-1, width-1),
		core.NewScreenRect(midY, 0, height-1, midX-1),
		core.NewScreenRect(midY, midX, height-1, width-1),
	}
}

// AllIDs yields every window id in order. The sequence is restartable.
func AllIDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for id := ID(0); id < Count; id++ {
			if !yield(id) {
				return
			}
		}
	}
}
