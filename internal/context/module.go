package context

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

// Patch is one module-variable binding: a single cell plus a hitch-chain
// link, so the owning symbol's hitch chain can be walked to discover
// every module that defines it (spec.md §3.4 "per-symbol hitch chain
// threading all bindings that mention the symbol"; §3.5 "Module contexts
// dispense with dense keylists and instead use per-symbol patch stubs
// threaded through the symbol's hitch chain").
type Patch struct {
	Module *Module
	Value  cellcore.Cell
	next   series.Hitch
}

func (p *Patch) GCMark() {
	cellcore.WalkNodes(&p.Value, func(n cellcore.Node) { n.GCMark() })
	if p.Module != nil {
		p.Module.GCMark()
	}
	if p.next != nil {
		p.next.GCMark()
	}
}

func (p *Patch) NextHitch() series.Hitch     { return p.next }
func (p *Patch) SetNextHitch(h series.Hitch) { p.next = h }

// Module is a context whose variables live as Patch stubs threaded
// through each bound symbol's hitch chain, per the resolution of
// spec.md §9's module-lookup Open Question recorded in SPEC_FULL.md §4
// (kept over a per-module hash table). The per-module map below is an
// implementation detail for O(1) local lookup; cross-module discovery
// of who defines a symbol still goes through the hitch chain via
// ModulesDefining.
type Module struct {
	marked  bool
	patches map[*series.Symbol]*Patch
}

// NewModule allocates an empty module context.
func NewModule() *Module {
	return &Module{patches: map[*series.Symbol]*Patch{}}
}

func (m *Module) GCMark() {
	if m.marked {
		return
	}
	m.marked = true
	for _, p := range m.patches {
		cellcore.WalkNodes(&p.Value, func(n cellcore.Node) { n.GCMark() })
	}
}

func (m *Module) ClearMark()     { m.marked = false }
func (m *Module) IsMarked() bool { return m.marked }

// Define creates (or returns the existing) Patch binding sym within m,
// pushing it onto sym's hitch chain the first time.
func (m *Module) Define(sym *series.Symbol) *Patch {
	if p, ok := m.patches[sym]; ok {
		return p
	}
	p := &Patch{Module: m}
	cellcore.InitBlank(&p.Value)
	m.patches[sym] = p
	series.PushHitch(sym, p)
	return p
}

// Lookup returns m's own Patch for sym, if any, without walking the
// hitch chain (the map already gives O(1) local resolution).
func (m *Module) Lookup(sym *series.Symbol) (*Patch, bool) {
	p, ok := m.patches[sym]
	return p, ok
}

// ModulesDefining walks sym's hitch chain and returns every Module that
// defines it — the cross-module half of find_symbol_in_context for
// module-flavored contexts (spec.md §4.7: "modules use the symbol's
// hitch chain directly").
func ModulesDefining(sym *series.Symbol) []*Module {
	var out []*Module
	for h := sym.HitchHead(); h != nil; h = h.NextHitch() {
		if p, ok := h.(*Patch); ok {
			out = append(out, p.Module)
		}
	}
	return out
}
