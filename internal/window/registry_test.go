package window

import (
	"testing"

	"github.com/dshills/quadmux/internal/renderer/core"
)

func TestQuadrantLayout(t *testing.T) {
	rects := QuadrantLayout(core.Width, core.Height)

	want := [Count]Rect{
		core.NewScreenRect(0, 0, 11, 39),
		core.NewScreenRect(0, 40, 11, 79),
		core.NewScreenRect(12, 0, 24, 39),
		core.NewScreenRect(12, 40, 24, 79),
	}
	if rects != want {
		t.Errorf("QuadrantLayout = %v, want %v", rects, want)
	}
}

func TestQuadrantLayoutDisjointAndInGrid(t *testing.T) {
	sizes := [][2]int{{80, 25}, {40, 12}, {7, 5}, {100, 50}}
	for _, sz := range sizes {
		rects := QuadrantLayout(sz[0], sz[1])
		cells := 0
		for i, a := range rects {
			if !a.Within(sz[0], sz[1]) {
				t.Errorf("%dx%d: rect %d %v outside grid", sz[0], sz[1], i, a)
			}
			cells += a.Width() * a.Height()
			for j := i + 1; j < Count; j++ {
				if a.Overlaps(rects[j]) {
					t.Errorf("%dx%d: rects %d and %d overlap", sz[0], sz[1], i, j)
				}
			}
		}
		if cells != sz[0]*sz[1] {
			t.Errorf("%dx%d: quadrants cover %d cells, want %d", sz[0], sz[1], cells, sz[0]*sz[1])
		}
	}
}

func TestRegistrySetActive(t *testing.T) {
	r := NewRegistry(QuadrantLayout(core.Width, core.Height))
	if r.Active() != 0 {
		t.Fatalf("initial focus = %d, want 0", r.Active())
	}

	if !r.SetActive(2) || r.Active() != 2 {
		t.Errorf("SetActive(2) did not move focus, active=%d", r.Active())
	}
	if r.SetActive(2) {
		t.Error("SetActive on the focused window should report no change")
	}

	for _, bad := range []ID{-1, Count, 99} {
		if r.SetActive(bad) {
			t.Errorf("SetActive(%d) should be ignored", bad)
		}
		if r.Active() != 2 {
			t.Errorf("focus moved to %d after invalid id %d", r.Active(), bad)
		}
	}
}

func TestRegistryRectOf(t *testing.T) {
	rects := QuadrantLayout(core.Width, core.Height)
	r := NewRegistry(rects)

	for id := range r.IDs() {
		if r.RectOf(id) != rects[id] {
			t.Errorf("RectOf(%d) = %v", id, r.RectOf(id))
		}
	}
	if r.RectOf(7) != (Rect{}) {
		t.Error("RectOf invalid id should be the zero rect")
	}
}

func TestIDsRestartable(t *testing.T) {
	r := NewRegistry(QuadrantLayout(core.Width, core.Height))

	for pass := 0; pass < 2; pass++ {
		var ids []ID
		for id := range r.IDs() {
			ids = append(ids, id)
		}
		if len(ids) != Count || ids[0] != 0 || ids[Count-1] != Count-1 {
			t.Errorf("pass %d: IDs() = %v", pass, ids)
		}
	}

	n := 0
	for range r.IDs() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("early break visited %d ids", n)
	}
}

func TestIDValidAndString(t *testing.T) {
	if !ID(0).Valid() || !ID(3).Valid() || ID(4).Valid() || ID(-1).Valid() {
		t.Error("Valid() mismatch")
	}
	if ID(2).String() != "window2" {
		t.Errorf("String() = %q", ID(2).String())
	}
}
