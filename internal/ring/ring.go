// Package ring provides wraparound arithmetic on a bounded index space.
//
// Every forward-advancing counter in the multiplexer (grid column, grid row,
// next write slot) is a ring index, so advancing past the edge of the grid
// lands back on zero instead of indexing out of bounds.
package ring

import "fmt"

// Add returns (value + delta) mod limit, always in [0, limit).
// limit must be positive.
func Add(value, delta, limit int) int {
	r := (value + delta) % limit
	if r < 0 {
		r += limit
	}
	return r
}

// Index is an integer confined to [0, modulus).
// The zero Index is not usable; construct one with New.
type Index struct {
	value   int
	modulus int
}

// New creates an index with the given modulus. The starting value is
// reduced into range. New panics if modulus is not positive.
func New(value, modulus int) Index {
	if modulus <= 0 {
		panic(fmt.Sprintf("ring: non-positive modulus %d", modulus))
	}
	return Index{value: Add(value, 0, modulus), modulus: modulus}
}

// Int returns the current value.
func (i Index) Int() int {
	return i.value
}

// Modulus returns the size of the index space.
func (i Index) Modulus() int {
	return i.modulus
}

// Advance returns the index moved by delta, wrapping at the modulus.
func (i Index) Advance(delta int) Index {
	i.value = Add(i.value, delta, i.modulus)
	return i
}

// Next returns the index moved forward by one.
func (i Index) Next() Index {
	return i.Advance(1)
}

// Prev returns the index moved back by one.
func (i Index) Prev() Index {
	return i.Advance(-1)
}

// Reset returns an index with the same modulus and value zero.
func (i Index) Reset() Index {
	i.value = 0
	return i
}

// Is reports whether the index currently holds v.
func (i Index) Is(v int) bool {
	return i.value == v
}

// Last reports whether the index sits on the final slot (modulus - 1).
func (i Index) Last() bool {
	return i.value == i.modulus-1
}

func (i Index) String() string {
	return fmt.Sprintf("%d/%d", i.value, i.modulus)
}
