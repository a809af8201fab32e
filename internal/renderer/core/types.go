// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the multiplexer and backend.
package core

import (
	"fmt"
	"strings"
)

// Grid dimensions in cells. Fixed for the process lifetime.
const (
	Width  = 80
	Height = 25
)

// Color is one of the 16 text-mode palette colors.
type Color uint8

// Palette colors, in text-mode attribute order.
const (
	ColorBlack Color = iota
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorBrown
	ColorLightGray
	ColorDarkGray
	ColorLightBlue
	ColorLightGreen
	ColorLightCyan
	ColorLightRed
	ColorPink
	ColorYellow
	ColorWhite
)

var colorNames = [...]string{
	ColorBlack:      "black",
	ColorBlue:       "blue",
	ColorGreen:      "green",
	ColorCyan:       "cyan",
	ColorRed:        "red",
	ColorMagenta:    "magenta",
	ColorBrown:      "brown",
	ColorLightGray:  "lightgray",
	ColorDarkGray:   "darkgray",
	ColorLightBlue:  "lightblue",
	ColorLightGreen: "lightgreen",
	ColorLightCyan:  "lightcyan",
	ColorLightRed:   "lightred",
	ColorPink:       "pink",
	ColorYellow:     "yellow",
	ColorWhite:      "white",
}

// String returns the lower-case color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Valid reports whether c is one of the 16 palette colors.
func (c Color) Valid() bool {
	return int(c) < len(colorNames)
}

// ParseColor parses a color name. Matching ignores case, spaces,
// underscores and dashes, so "Light Gray" and "light_gray" both work.
func ParseColor(name string) (Color, error) {
	norm := strings.ToLower(name)
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "grey":
		return ColorDarkGray, nil
	case "lightgrey":
		return ColorLightGray, nil
	}
	for i, n := range colorNames {
		if n == norm {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", name)
}

// ColorPair encodes the foreground and background of a cell.
type ColorPair struct {
	Foreground Color
	Background Color
}

// NewColorPair creates a color pair.
func NewColorPair(fg, bg Color) ColorPair {
	return ColorPair{Foreground: fg, Background: bg}
}

// Invert returns the pair with foreground and background swapped.
func (p ColorPair) Invert() ColorPair {
	return ColorPair{Foreground: p.Background, Background: p.Foreground}
}

func (p ColorPair) String() string {
	return p.Foreground.String() + "/" + p.Background.String()
}

// Cell represents a single grid cell.
type Cell struct {
	Rune   rune
	Colors ColorPair
}

// EmptyCell returns a blank cell, light gray on black.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Colors: NewColorPair(ColorLightGray, ColorBlack)}
}

// NewCell creates a cell with the given rune and colors.
func NewCell(r rune, colors ColorPair) Cell {
	return Cell{Rune: r, Colors: colors}
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c == other
}

// ScreenRect is a rectangular grid region with inclusive bounds.
type ScreenRect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// NewScreenRect creates a screen rectangle.
func NewScreenRect(top, left, bottom, right int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: bottom, Right: right}
}

// Width returns the number of columns covered.
func (r ScreenRect) Width() int {
	return r.Right - r.Left + 1
}

// Height returns the number of rows covered.
func (r ScreenRect) Height() int {
	return r.Bottom - r.Top + 1
}

// Valid reports whether top ≤ bottom and left ≤ right.
func (r ScreenRect) Valid() bool {
	return r.Top <= r.Bottom && r.Left <= r.Right
}

// Contains returns true if (x, y) lies inside the rectangle.
func (r ScreenRect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Overlaps returns true if the two rectangles share at least one cell.
func (r ScreenRect) Overlaps(other ScreenRect) bool {
	return r.Left <= other.Right && other.Left <= r.Right &&
		r.Top <= other.Bottom && other.Top <= r.Bottom
}

// Within returns true if the rectangle lies inside a width×height grid.
func (r ScreenRect) Within(width, height int) bool {
	return r.Valid() && r.Top >= 0 && r.Left >= 0 && r.Right < width && r.Bottom < height
}

// OnBorder returns true if (x, y) is on the outline of the rectangle.
func (r ScreenRect) OnBorder(x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	return x == r.Left || x == r.Right || y == r.Top || y == r.Bottom
}

func (r ScreenRect) String() string {
	return fmt.Sprintf("[%d,%d]-[%d,%d]", r.Top, r.Left, r.Bottom, r.Right)
}

// Theme holds the color pairs used when drawing windows.
type Theme struct {
	// Muted erases the previously drawn live line.
	Muted ColorPair
	// Border outlines unfocused windows.
	Border ColorPair
	// ActiveBorder outlines the focused window.
	ActiveBorder ColorPair
	// Content draws the focused window's live line.
	Content ColorPair
}

// DefaultTheme returns the stock text-mode theme.
func DefaultTheme() Theme {
	return Theme{
		Muted:        NewColorPair(ColorBlack, ColorBlack),
		Border:       NewColorPair(ColorWhite, ColorBlack),
		ActiveBorder: NewColorPair(ColorBlack, ColorYellow),
		Content:      NewColorPair(ColorGreen, ColorBlack),
	}
}
