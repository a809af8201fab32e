package window

import "iter"

// Registry is the fixed set of window rectangles plus the focused window.
type Registry struct {
	rects  [Count]Rect
	active ID
}

// NewRegistry creates a registry over the given rectangles with focus on
// window 0.
func NewRegistry(rects [Count]Rect) *Registry {
	return &Registry{rects: rects}
}

// SetActive moves focus to id. Ids outside [0, Count) are ignored.
// Returns true if the focus changed.
func (r *Registry) SetActive(id ID) bool {
	if !id.Valid() || id == r.active {
		return false
	}
	r.active = id
	return true
}

// Active returns the focused window.
func (r *Registry) Active() ID {
	return r.active
}

// RectOf returns the rectangle of a window. Invalid ids yield the zero
// rectangle.
func (r *Registry) RectOf(id ID) Rect {
	if !id.Valid() {
		return Rect{}
	}
	return r.rects[id]
}

// IDs yields every window id in order.
func (r *Registry) IDs() iter.Seq[ID] {
	return AllIDs()
}
