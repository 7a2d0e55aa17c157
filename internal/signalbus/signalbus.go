// Package signalbus implements the engine's signal bus: a fixed-width,
// index-addressable array of value cells.
package signalbus

import "circuitgo/internal/cell"

// SignalBus is an ordered array of cells whose length is fixed once
// SetSignalCount is called.
type SignalBus struct {
	cells []cell.Cell
}

// SetSignalCount resizes the bus to hold n cells. Existing cells below n
// are preserved; this is only ever called during component configuration,
// before any ticking begins.
func (b *SignalBus) SetSignalCount(n int) {
	if n == len(b.cells) {
		return
	}
	grown := make([]cell.Cell, n)
	copy(grown, b.cells)
	b.cells = grown
}

// SignalCount returns the bus's fixed width.
func (b *SignalBus) SignalCount() int {
	return len(b.cells)
}

// Cell returns the cell at index i.
func (b *SignalBus) Cell(i int) *cell.Cell {
	return &b.cells[i]
}

// ClearAllValues empties every cell in the bus.
func (b *SignalBus) ClearAllValues() {
	for i := range b.cells {
		b.cells[i].Clear()
	}
}

// HasValue reports whether the cell at index i currently holds a value.
func (b *SignalBus) HasValue(i int) bool {
	return b.cells[i].HasValue()
}

// Value returns the payload at index i, or nil if empty.
func (b *SignalBus) Value(i int) any {
	return b.cells[i].Value()
}

// SetValue stores a copy of v at index i.
func (b *SignalBus) SetValue(i int, v any) {
	b.cells[i].SetValue(v)
}

// MoveValueFrom swaps the value at index i with src.
func (b *SignalBus) MoveValueFrom(i int, src *cell.Cell) {
	b.cells[i].MoveValueFrom(src)
}

// TypedValue returns the payload at index i as a T, and true, only when
// the cell holds a value and its stored type is exactly T. This is the
// engine's get-typed-pointer operation.
func TypedValue[T any](b *SignalBus, i int) (T, bool) {
	var zero T
	v := b.cells[i].Value()
	if v == nil {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
