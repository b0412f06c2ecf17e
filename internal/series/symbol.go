package series

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/stub"
)

// Hitch is satisfied by anything threaded through a Symbol's hitch
// chain (spec.md §3.4: "per-symbol hitch chain threading all bindings
// that mention the symbol"). internal/context's module Patch type
// implements this; series itself stays agnostic of what a hitch actually
// is, avoiding an import cycle back to context. Embedding cellcore.Node
// means a hitch chain threaded through a Symbol's Misc field is walked
// by the ordinary stub.GCMark machinery with no special-casing here.
type Hitch interface {
	cellcore.Node
	NextHitch() Hitch
	SetNextHitch(Hitch)
}

// Symbol is an interned UTF-8 string with a synonym ring (spelling
// variants that compare equal as a symbol — e.g. case variants under a
// case-insensitive binding mode) threaded through the underlying Stub's
// Link field, and a hitch chain threaded through its Misc field, exactly
// the mapping spec.md §3.3's per-flavor link/misc table describes.
type Symbol struct {
	*Series
	text string
}

var interner = map[string]*Symbol{}

// Intern returns the canonical Symbol for text, creating and registering
// one if this is the first time text has been seen. Interning means
// pointer equality implies string equality — every comparison downstream
// (word lookup, hitch-chain walks) compares *Symbol pointers, never
// string content.
func Intern(text string) *Symbol {
	if sym, ok := interner[text]; ok {
		return sym
	}
	sym := &Symbol{Series: Make(stub.FlavorSymbol, len(text))}
	sym.S.SetBytes([]byte(text))
	sym.S.SetUsed(len(text))
	sym.text = text
	interner[text] = sym
	return sym
}

// Text returns the symbol's spelling.
func (s *Symbol) Text() string { return s.text }

// AllSymbols returns every interned symbol. The interner is a permanent
// GC root (spec.md §3.4: symbols themselves are never collected), so
// internal/gc walks this to reach whatever hitch chain of module
// bindings each symbol still carries, without needing its own notion of
// "every module in scope".
func AllSymbols() []*Symbol {
	out := make([]*Symbol, 0, len(interner))
	for _, sym := range interner {
		out = append(out, sym)
	}
	return out
}

// GCMark delegates to the underlying Stub, which walks Misc (the hitch
// chain, stored with its needs-mark bit set by PushHitch). Link (the
// synonym ring) is stored without that bit by AddSynonym, so it is not
// walked.
func (s *Symbol) GCMark() { s.S.GCMark() }

// Synonym returns the next symbol in s's ring (the ring is circular; a
// lone symbol is its own synonym).
func (s *Symbol) Synonym() *Symbol {
	if sym, ok := s.S.Link().(*Symbol); ok && sym != nil {
		return sym
	}
	return s
}

// AddSynonym links other into s's ring by splicing: a standard
// circular-linked-list two-node splice.
func AddSynonym(s, other *Symbol) {
	sNext := s.Synonym()
	oNext := other.Synonym()
	s.S.SetLink(oNext, false)
	other.S.SetLink(sNext, false)
}

// Synonyms returns every symbol in s's ring, including s itself.
func Synonyms(s *Symbol) []*Symbol {
	out := []*Symbol{s}
	for cur := s.Synonym(); cur != s; cur = cur.Synonym() {
		out = append(out, cur)
	}
	return out
}

// HitchHead returns the head of s's hitch chain, or nil if none.
func (s *Symbol) HitchHead() Hitch {
	if h, ok := s.S.Misc().(Hitch); ok {
		return h
	}
	return nil
}

// PushHitch threads h onto the front of s's hitch chain.
func PushHitch(s *Symbol, h Hitch) {
	h.SetNextHitch(s.HitchHead())
	s.S.SetMisc(h, true)
}
