// Package cell implements the engine's value cell: a container that holds
// at most one dynamically typed payload, keyed on a stable type tag so
// that repeated assignment of the same type reuses storage instead of
// reallocating.
package cell

import "reflect"

// Cell holds at most one payload. The zero value is an empty cell ready
// for use.
type Cell struct {
	value any
	typ   reflect.Type
	has   bool
}

// HasValue reports whether the cell currently holds a payload.
func (c *Cell) HasValue() bool {
	return c.has
}

// Type returns the type tag of the last stored payload, or nil if the
// cell has never held a value.
func (c *Cell) Type() reflect.Type {
	return c.typ
}

// Clear empties the cell. The type tag hint is retained so a subsequent
// SetValue of the same type can reuse storage.
func (c *Cell) Clear() {
	c.has = false
}

// Value returns the current payload, or nil if the cell is empty.
func (c *Cell) Value() any {
	if !c.has {
		return nil
	}
	return c.value
}

// SetValue stores a copy of v into the cell. When v's type matches the
// cell's current type tag the existing storage slot is simply
// overwritten; Go's interface assignment already avoids any extra
// allocation beyond v's own boxing, so this is a direct assignment
// either way.
func (c *Cell) SetValue(v any) {
	c.value = v
	c.typ = reflect.TypeOf(v)
	c.has = true
}

// MoveValueFrom swaps storage with src: the payload (if any) moves into
// c, and src is left holding c's previous storage (marked empty if c was
// empty). This is the move half of the engine's copy/move/swap contract;
// it is a plain swap, not a swap-then-clear, so the vacated cell keeps a
// type tag hint for its next SetValue.
func (c *Cell) MoveValueFrom(src *Cell) {
	c.Swap(src)
}

// Swap exchanges the full state (value, type tag, has-value flag)
// between c and other.
func (c *Cell) Swap(other *Cell) {
	c.value, other.value = other.value, c.value
	c.typ, other.typ = other.typ, c.typ
	c.has, other.has = other.has, c.has
}
