package context

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

// Context is a pair (Varlist, Keylist) per spec.md §3.5. The Keylist
// lives in the Varlist's underlying Stub Link field (its "keysource"),
// exactly where a running function's frame will temporarily install a
// Level pointer instead (spec.md §4.7); Context itself never duplicates
// that state.
type Context struct {
	Varlist *series.Array
}

// AllocContext builds a varlist + keylist with room for capacity
// variables; Varlist slot 0 is set to the self-referential archetype
// (spec.md §4.7 alloc_context).
func AllocContext(capacity int) *Context {
	varlist := series.NewArray(capacity + 1)
	varlist.S.AppendCells(cellcore.Cell{}) // reserved slot 0, filled in below
	cellcore.InitObject(varlist.At(0), varlist.S)
	varlist.S.SetLink(newKeylist(capacity), true)
	return &Context{Varlist: varlist}
}

// Keys returns ctx's current keylist, or nil if its keysource has been
// temporarily swapped out for a Level pointer (BindToLevel).
func (ctx *Context) Keys() *Keylist {
	kl, _ := ctx.Varlist.S.Link().(*Keylist)
	return kl
}

// Len returns the number of variable slots (excludes the archetype).
func (ctx *Context) Len() int { return ctx.Varlist.Len() - 1 }

// At returns variable slot i (1-based: At(1) is the first variable,
// matching Keys().At(0)).
func (ctx *Context) At(i int) *cellcore.Cell { return ctx.Varlist.At(i) }

// Archetype returns the self-referential cell at slot 0.
func (ctx *Context) Archetype() *cellcore.Cell { return ctx.Varlist.At(0) }

// Expand appends n new variable slots, each initialized blank, without
// binding any symbols to them yet (spec.md §4.7 expand_context). Forces
// a private keylist copy if shared, even though this call alone doesn't
// append keys, so that a subsequent Bind never silently mutates a
// sibling context's shared keylist.
func (ctx *Context) Expand(n int) {
	if kl := ctx.Keys(); kl != nil {
		kl.ensurePrivate()
	}
	for i := 0; i < n; i++ {
		var blank cellcore.Cell
		cellcore.InitBlank(&blank)
		ctx.Varlist.S.AppendCells(blank)
	}
}

// Bind appends one new (symbol, initial-value) slot, expanding both
// Varlist and Keylist by one, and returns its 1-based slot index.
func (ctx *Context) Bind(sym *series.Symbol, initial cellcore.Cell) int {
	kl := ctx.Keys()
	if kl == nil {
		panic("context: Bind while keysource is swapped out for a Level")
	}
	kl.Append(sym)
	idx := ctx.Varlist.Len()
	ctx.Varlist.S.AppendCells(initial)
	return idx
}

// FindSymbol returns the 1-based slot index of sym in ctx, or 0 if not
// found. When strict is false, spelling variants in sym's synonym ring
// are also accepted (spec.md §4.7 find_symbol_in_context).
func (ctx *Context) FindSymbol(sym *series.Symbol, strict bool) int {
	kl := ctx.Keys()
	if kl == nil {
		return 0
	}
	for i := 0; i < kl.Len(); i++ {
		k := kl.At(i)
		if k == sym {
			return i + 1
		}
		if !strict {
			for _, syn := range series.Synonyms(sym) {
				if k == syn {
					return i + 1
				}
			}
		}
	}
	return 0
}

// ProtectMode selects whole-context vs per-slot protection (spec.md
// §4.7 protect_context).
type ProtectMode uint8

const (
	ProtectWhole ProtectMode = iota
	ProtectSlot
)

// Protect locks ctx against mutation. ProtectWhole shallow-freezes the
// backing series; ProtectSlot instead sets FlagProtected on every
// individual variable cell, matching the source's per-slot option.
func Protect(ctx *Context, mode ProtectMode) {
	switch mode {
	case ProtectWhole:
		ctx.Varlist.FreezeShallow()
	case ProtectSlot:
		cells := ctx.Varlist.S.Cells()
		for i := 1; i < len(cells); i++ {
			cells[i].SetFlags(cellcore.FlagProtected)
		}
	}
}

// BindToLevel temporarily replaces ctx's keysource with lvl (the Level
// currently executing this frame), returning the displaced Keylist so
// the caller restores it when the level ends — the O(1) Level<->Context
// navigation spec.md §4.7 describes.
func BindToLevel(ctx *Context, lvl cellcore.Node) *Keylist {
	prior := ctx.Keys()
	ctx.Varlist.S.SetLink(lvl, true)
	return prior
}

// RestoreKeylist undoes BindToLevel once the level that called it ends.
func RestoreKeylist(ctx *Context, kl *Keylist) {
	ctx.Varlist.S.SetLink(kl, true)
}
