package series

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/stub"
)

// Array is a cell-array-backed series (spec.md §3.4): elements are
// cells, length is explicit (no in-band terminator — unlike C arrays of
// cells, a Go slice already knows its own length, so the "poisoned tail
// cell" trick from the source is not needed for length tracking; it is
// still supported for callers that want an explicit tail sentinel, e.g.
// to hand a raw *cellcore.Cell cursor to an external iterator).
type Array struct{ *Series }

// NewArray allocates an empty, managed cell array with room for
// capacity elements.
func NewArray(capacity int) *Array {
	return &Array{Make(stub.FlavorArray, capacity)}
}

// WrapArray adapts an existing array-flavor Stub as an *Array view, for
// callers that received the Stub back out of a cellcore.Cell's payload
// node (block/group/path cells only ever reference the Stub itself) and
// need the typed series API again.
func WrapArray(s *stub.Stub) *Array {
	return &Array{&Series{S: s, Wide: cellWide}}
}

// Len returns the array's element count.
func (a *Array) Len() int { return a.S.Used() }

// At returns a pointer to element i, panicking on an out-of-range index
// (an implementation bug — callers must bounds-check against Len first).
func (a *Array) At(i int) *cellcore.Cell {
	cells := a.S.Cells()
	if i < 0 || i >= len(cells) {
		panic("series: array index out of range")
	}
	return &cells[i]
}

// Append adds elements to the end of the array after checking
// read-only, rejecting any element that is not Element-safe (no
// antiforms, spec.md testable property 5).
func Append(a *Array, elems ...cellcore.Cell) error {
	if err := FailIfReadOnly(a.Series); err != nil {
		return err
	}
	for i := range elems {
		if !cellcore.IsElementSafe(&elems[i]) {
			return errAntiformInArray
		}
	}
	a.S.AppendCells(elems...)
	return nil
}

var errAntiformInArray = arrayError("cannot store an antiform in an array")

type arrayError string

func (e arrayError) Error() string { return string(e) }

// Tail returns a poisoned cell usable as an explicit tail sentinel,
// matching spec.md §3.1's "array tail sentinel" convention for external
// iterators that expect one.
func Tail() cellcore.Cell {
	var c cellcore.Cell
	cellcore.Poison(&c)
	return c
}
