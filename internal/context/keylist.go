// Package context implements the Context/Keylist substrate of spec.md
// §3.5/§4.7: a Varlist (an Array whose slot 0 is a self-referential
// archetype) paired with a Keylist of interned symbols, plus the
// hitch-chain-based Module variant the spec's module-lookup Open
// Question resolves in favor of (see DESIGN.md).
package context

import (
	"github.com/wyrdlang/wyrd/internal/series"
)

// keylistData is the actual backing slice, shared by any number of
// Keylist handles until one of them mutates — at which point refs being
// nonzero forces a private copy (spec.md §3.5: "Keylists may be shared
// (copy-on-write: expansion of a shared keylist forces duplication)").
type keylistData struct {
	syms []*series.Symbol
	refs int
}

// Keylist is a parallel Series of interned Symbol pointers keyed to a
// Context's Varlist slots 1..N (slot 0 has no key: it is the archetype).
type Keylist struct {
	data *keylistData
}

func newKeylist(capacity int) *Keylist {
	return &Keylist{data: &keylistData{syms: make([]*series.Symbol, 0, capacity)}}
}

// Share returns a second handle onto k's current backing slice. Both
// handles see the same content until one of them appends, at which
// point that one (and, on its next append, the other) gets its own
// private copy.
func (k *Keylist) Share() *Keylist {
	k.data.refs++
	return &Keylist{data: k.data}
}

func (k *Keylist) ensurePrivate() {
	if k.data.refs > 0 {
		cp := make([]*series.Symbol, len(k.data.syms), len(k.data.syms)+4)
		copy(cp, k.data.syms)
		k.data = &keylistData{syms: cp}
	}
}

// Len returns the number of keys.
func (k *Keylist) Len() int { return len(k.data.syms) }

// At returns the symbol at index i (0-based into the key sequence,
// corresponding to Varlist slot i+1).
func (k *Keylist) At(i int) *series.Symbol { return k.data.syms[i] }

// Append adds sym as a new key, forcing a private copy first if k is
// currently shared.
func (k *Keylist) Append(sym *series.Symbol) {
	k.ensurePrivate()
	k.data.syms = append(k.data.syms, sym)
}

// GCMark marks every symbol the keylist references. Symbols are also
// reachable via the global interner, but a Keylist is handed to
// cellcore as a Node (stored in a Varlist stub's Link field) and must
// satisfy the interface regardless.
func (k *Keylist) GCMark() {
	for _, sym := range k.data.syms {
		if sym != nil {
			sym.GCMark()
		}
	}
}
