package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"black", ColorBlack},
		{"Yellow", ColorYellow},
		{"light gray", ColorLightGray},
		{"light_green", ColorLightGreen},
		{"LIGHT-CYAN", ColorLightCyan},
		{"grey", ColorDarkGray},
		{"lightgrey", ColorLightGray},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("expected error for unknown color")
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for c := ColorBlack; c <= ColorWhite; c++ {
		got, err := ParseColor(c.String())
		if err != nil || got != c {
			t.Errorf("round trip of %v gave %v, %v", c, got, err)
		}
	}
	if Color(99).Valid() {
		t.Error("color 99 should not be valid")
	}
	if Color(99).String() != "color(99)" {
		t.Errorf("unexpected name for invalid color: %s", Color(99))
	}
}

func TestColorPairInvert(t *testing.T) {
	p := NewColorPair(ColorGreen, ColorBlack)
	inv := p.Invert()
	if inv.Foreground != ColorBlack || inv.Background != ColorGreen {
		t.Errorf("Invert() = %v", inv)
	}
	if p.String() != "green/black" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestScreenRectGeometry(t *testing.T) {
	r := NewScreenRect(0, 0, 11, 39)

	if r.Width() != 40 || r.Height() != 12 {
		t.Errorf("expected 40x12, got %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(39, 11) || r.Contains(40, 11) || r.Contains(0, 12) {
		t.Error("Contains should use inclusive bounds")
	}
	if !r.OnBorder(0, 5) || !r.OnBorder(20, 11) || r.OnBorder(20, 5) {
		t.Error("OnBorder mismatch")
	}
	if !r.Within(Width, Height) {
		t.Error("rect should fit in the grid")
	}
	if NewScreenRect(0, 0, 11, Width).Within(Width, Height) {
		t.Error("rect reaching column Width should not fit")
	}
	if NewScreenRect(5, 0, 4, 10).Valid() {
		t.Error("top > bottom should be invalid")
	}
}

func TestScreenRectOverlaps(t *testing.T) {
	a := NewScreenRect(0, 0, 11, 39)
	b := NewScreenRect(0, 40, 11, 79)
	c := NewScreenRect(11, 39, 20, 50)

	if a.Overlaps(b) || b.Overlaps(a) {
		t.Error("adjacent rects must not overlap")
	}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Error("rects sharing cell (39,11) overlap")
	}
}

func TestDefaultThemeDistinguishesFocus(t *testing.T) {
	th := DefaultTheme()
	if th.Border == th.ActiveBorder {
		t.Error("active border must differ from normal border")
	}
	if th.Muted.Foreground != th.Muted.Background {
		t.Error("muted pair should be blank")
	}
}
