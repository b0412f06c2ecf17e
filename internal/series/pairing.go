package series

import "github.com/wyrdlang/wyrd/internal/cellcore"

// Pairing is a managed two-cell allocation addressable as a node (spec.md
// §3.4): the compact representation for things like a paired sequence
// element or an x/y coordinate pair, cheaper than a full array Stub
// because it carries no used/rest/bonus bookkeeping at all.
type Pairing struct {
	marked bool
	cells  [2]cellcore.Cell
}

// NewPairing allocates a managed Pairing.
func NewPairing() *Pairing { return &Pairing{} }

// First and Second return pointers to the pairing's two cells.
func (p *Pairing) First() *cellcore.Cell  { return &p.cells[0] }
func (p *Pairing) Second() *cellcore.Cell { return &p.cells[1] }

// GCMark marks the pairing and both of its cells' outgoing edges.
func (p *Pairing) GCMark() {
	if p.marked {
		return
	}
	p.marked = true
	cellcore.WalkNodes(&p.cells[0], func(n cellcore.Node) { n.GCMark() })
	cellcore.WalkNodes(&p.cells[1], func(n cellcore.Node) { n.GCMark() })
}

// ClearMark resets the pairing's mark bit at the start of a GC cycle.
func (p *Pairing) ClearMark() { p.marked = false }

// IsMarked reports whether the pairing survived the last mark phase.
func (p *Pairing) IsMarked() bool { return p.marked }
