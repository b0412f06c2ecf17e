package action

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

// Feed is a restartable cursor over an evaluation input array (spec.md
// §3.8: "feed — cursor over input (an array + index, or a variadic
// source)"). A variadic source is modeled as a Feed over a synthetic
// array assembled by the caller; no separate representation is needed
// in Go since the array-vs-variadic distinction is purely about how the
// backing array was produced, not how it's consumed here.
type Feed struct {
	Array *series.Array
	Index int
}

// NewFeed wraps arr in a fresh cursor positioned at its first element.
func NewFeed(arr *series.Array) *Feed { return &Feed{Array: arr} }

// AtEnd reports whether the cursor has consumed every element.
func (f *Feed) AtEnd() bool { return f.Index >= f.Array.Len() }

// Peek returns the element at the cursor without advancing it. Panics
// if AtEnd (callers must check first).
func (f *Feed) Peek() *cellcore.Cell { return f.Array.At(f.Index) }

// Next returns the element at the cursor and advances past it.
func (f *Feed) Next() *cellcore.Cell {
	c := f.Array.At(f.Index)
	f.Index++
	return c
}
