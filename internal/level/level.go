// Package level implements the evaluator's activation record and the
// stackless trampoline that drives it (spec.md §3.8/§4.9): a Level is a
// heap-allocated frame with an Executor state machine, and Run repeatedly
// calls the current Level's Executor until the whole chain finishes —
// never recursing the host Go stack for a chain of calls, however deep.
package level

import (
	"github.com/wyrdlang/wyrd/internal/action"
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/context"
	"github.com/wyrdlang/wyrd/internal/pool"
	"github.com/wyrdlang/wyrd/internal/wyrderr"
)

// Flags are per-level bits (spec.md §3.8's level flag list).
type Flags uint16

const (
	// FlagBranch marks a level evaluating a branch argument (spec.md
	// §4.9). EvalBranch does not read it: its blank and quoted cases
	// apply whether or not the flag is set.
	FlagBranch Flags = 1 << iota
	// FlagMetaResult asks the level to leave its result meta-quoted
	// rather than decayed, used by branch continuation's null case.
	FlagMetaResult
	// FlagFailureOK names the opt-in for receiving a Fail as an
	// antiform-error result rather than a throw. No executor in this
	// package reads it: failBounce always propagates a Fail as
	// BounceThrown, whatever the level's flags.
	FlagFailureOK
	// FlagAbruptFailure names a level that is unwinding because of an
	// error raised beneath it, for diagnostics only. Nothing in this
	// package sets it.
	FlagAbruptFailure
)

// Baseline is the failure-rollback snapshot captured when a level is
// pushed (spec.md §3.8, §5: "failure unwinds... rolling back stacks to
// each level's baseline"). internal/gc and internal/pool are the actual
// owners of what these counts mean; level only carries them through.
type Baseline struct {
	ManualsCount int
	GuardsCount  int
}

// Executor drives one Level for a single trampoline tick. It must
// return promptly: pushing a sublevel and returning BounceContinue (or
// BounceDelegate) is how a level "calls" another, never a direct Go
// call back into Run.
type Executor func(l *Level) Bounce

// Level is a heap-allocated activation record (spec.md §3.8): the
// in-progress state of either an expression evaluation or a single
// action call.
type Level struct {
	Executor Executor
	State    uint8
	Flags    Flags

	Feed    *action.Feed
	Out     cellcore.Cell
	Spare   cellcore.Cell
	Scratch cellcore.Cell
	Ctx     *context.Context

	// U is executor-specific working state (spec.md's level "u" union):
	// *actionState for ActionExecutor; EvalExecutor leaves it unused.
	U interface{}

	Baseline Baseline
	Prior    *Level
	Thrown   ThrownPayload

	// Alloc is the pool.Allocator this level's manuals/guards baseline
	// was captured against. It is nil-safe (a level that never tracks
	// manuals or guards has nothing to roll back) and propagates to every
	// sublevel pushed beneath it in PushSublevel, so a host only ever
	// needs to set it once, on the top level.
	Alloc *pool.Allocator

	pushedChild    *Level
	delegated      bool
	delegateParent *Level
}

// ThrownPayload carries a pending Fail/Throw between the Level that
// raised it and the first ancestor whose executor catches it (spec.md
// §4.9 "Cancellation"; internal/wyrderr models the error value itself,
// this just threads it through the trampoline).
type ThrownPayload struct {
	Label   string
	Payload cellcore.Cell
	Cause   error
	Active  bool
}

// asError turns a ThrownPayload that reached the top of the level chain
// unhandled into the *wyrderr.Error Run returns to its caller.
func (t ThrownPayload) asError() error {
	if t.Cause != nil {
		return t.Cause
	}
	if t.Label != "" {
		return wyrderr.NewThrow(t.Label)
	}
	return wyrderr.NewFail("unhandled failure")
}

// NewLevel allocates a level running executor with the given baseline.
func NewLevel(baseline Baseline, executor Executor) *Level {
	return &Level{Executor: executor, Baseline: baseline}
}

// PushSublevel makes child a new top-of-stack beneath l: l becomes
// child's Prior, and child is stashed for Run to pick up once l's
// executor tick returns BounceContinue or BounceDelegate.
func PushSublevel(l, child *Level) {
	child.Prior = l
	child.Alloc = l.Alloc
	l.pushedChild = child
}

// GCMark marks every cell and context a level roots directly (spec.md
// §4.10: "for each Level on the chain, its out/spare/scratch/varlist").
// Prior is not marked here — the trampoline's Level chain itself is a
// GC root walked separately, not through Node.GCMark chaining, since
// Level isn't heap content any other Stub ever points to.
func (l *Level) GCMark() {
	cellcore.WalkNodes(&l.Out, func(n cellcore.Node) { n.GCMark() })
	cellcore.WalkNodes(&l.Spare, func(n cellcore.Node) { n.GCMark() })
	cellcore.WalkNodes(&l.Scratch, func(n cellcore.Node) { n.GCMark() })
	if l.Ctx != nil {
		l.Ctx.Varlist.S.GCMark()
	}
	if l.Feed != nil {
		l.Feed.Array.S.GCMark()
	}
	if l.Thrown.Active {
		cellcore.WalkNodes(&l.Thrown.Payload, func(n cellcore.Node) { n.GCMark() })
	}
}

// rollback undoes whatever l allocated since it was pushed: every manual
// freed and every guard dropped since l.Baseline was captured (spec.md
// §7: an abrupt failure unwinding past a level runs "baseline rollback,
// drop guards pushed at this level, free manuals allocated here"). The
// trampoline calls this on every level a BounceThrown passes through,
// before handing Thrown up to the parent. A level with no Alloc (it
// never tracked anything, e.g. most tests) is a no-op.
func (l *Level) rollback() {
	if l.Alloc == nil {
		return
	}
	l.Alloc.RollbackManuals(l.Baseline.ManualsCount)
	l.Alloc.RollbackGuards(l.Baseline.GuardsCount)
}

// Chain returns every level from l back through its Prior links, l
// first. internal/gc uses this to mark the whole active call chain as a
// single root, rather than reaching into Level's private pushedChild/
// delegate bookkeeping itself.
func (l *Level) Chain() []*Level {
	var out []*Level
	for cur := l; cur != nil; cur = cur.Prior {
		out = append(out, cur)
	}
	return out
}
