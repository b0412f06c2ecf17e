// Package action implements Action identity, Paramlist descriptors, and
// frame-based dispatch (spec.md §3.6/§4.8): a function is a Stub of
// flavor Details whose first cell is its own archetype, carrying a
// Paramlist and a native dispatcher.
package action

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
	"github.com/wyrdlang/wyrd/internal/stub"
	"github.com/wyrdlang/wyrd/internal/wyrderr"
)

// Dispatcher is the Phase's native implementation, invoked once a
// Frame's arguments are fulfilled and typechecked (spec.md §4.8 step
// 3 "Dispatch"). It is a plain Go function: the stackless trampoline
// requirement in spec.md applies to *user-defined* calls chaining
// through the evaluator (internal/level), not to a single native
// dispatcher's own Go-level control flow.
type Dispatcher func(f *Frame) (cellcore.Cell, error)

// Action is a callable function identity.
type Action struct {
	Details   *stub.Stub
	Paramlist *Paramlist
	Label     *series.Symbol
	Dispatch  Dispatcher

	// Body is non-nil for a user-defined action: a block cell holding
	// its source statements (spec.md §3.6's "native or user-defined"
	// split). A level-aware caller (internal/level) runs Body through
	// the trampoline instead of invoking Dispatch, so a chain of
	// user-defined self-calls stays stackless; Dispatch above still
	// exists on a Body-bearing action only as the Call-without-a-level
	// fallback below.
	Body *cellcore.Cell
}

// New builds an Action: a Details stub whose sole inline cell is its
// own archetype (spec.md §3.6 "identified by a Stub of flavor DETAILS
// whose first cell is its archetype"). The Action value itself rides on
// the stub's Misc field, since every cell referencing this action only
// ever holds the stub — recovering Paramlist/Dispatch from a bare cell
// later means they must be reachable from the stub, not a Go-side
// struct the cell never points to.
func New(paramlist *Paramlist, label *series.Symbol, dispatch Dispatcher) *Action {
	d := stub.New(stub.FlavorDetails)
	d.EnsureDynamicCells(1)
	d.AppendCells(cellcore.Cell{})
	cellcore.InitAction(&d.Cells()[0], d)
	a := &Action{Details: d, Paramlist: paramlist, Label: label, Dispatch: dispatch}
	d.SetMisc(a, false)
	return a
}

// NewUserDefined builds an action whose implementation is body rather
// than a native Go closure. Calling it through Call (no level/trampoline
// involved) fails outright — Body can only be run by a level-aware
// caller that evaluates it through the trampoline.
func NewUserDefined(paramlist *Paramlist, label *series.Symbol, body *cellcore.Cell) *Action {
	a := New(paramlist, label, func(f *Frame) (cellcore.Cell, error) {
		return cellcore.Cell{}, wyrderr.NewFail("action: user-defined body requires a level-aware caller")
	})
	a.Body = body
	return a
}

// Archetype returns the action's self-referential cell.
func (a *Action) Archetype() *cellcore.Cell { return &a.Details.Cells()[0] }

// FromCell recovers the Go-level Action behind a cell holding an action
// value, given only the cell (spec.md §3.6; see New's comment on why
// the round trip goes through the Details stub's Misc field).
func FromCell(c *cellcore.Cell) (*Action, bool) {
	d, ok := c.BoundNode().(*stub.Stub)
	if !ok {
		return nil, false
	}
	a, ok := d.Misc().(*Action)
	return a, ok
}
