// Package window holds the fixed partition of the grid into quadrant
// windows, the focus registry, and each window's line-buffered text state.
//
// Windows are never created, destroyed or resized after startup. Each
// window keeps its own buffer and write cursor; only the focused window
// receives input.
package window
