// Package pool holds the allocator bookkeeping of spec.md §4.2: the
// manuals vector and guard stack that back failure rollback (spec.md
// §4.2, §5), the GC depletion counter, and BucketFor's size-class
// rounding. It keeps no node or data pools of its own: stubs and their
// dynamic data are allocated by the Go runtime (see stub.New), and
// nothing in the core calls BucketFor.
package pool

import (
	"github.com/sirupsen/logrus"

	"github.com/wyrdlang/wyrd/internal/diag"
)

// sizeBucketCap is the largest dynamic-series allocation routed through a
// size-bucketed pool; anything bigger goes straight to the Go allocator,
// mirroring the teacher's array-size-class pools in value.go
// (ArrayPool/arrayPools) generalized from arrays specifically to any
// series payload.
const sizeBucketCap = 2048

// Manual is anything the manuals vector can track: a heap object that
// exists outside of GC management until freed or promoted.
type Manual interface {
	// ManualFree releases this object's backing storage immediately.
	ManualFree()
}

// Allocator holds the manuals vector, the guard stack, and the
// depletion counter. stub.New and the series constructors do not take
// or consult an Allocator; callers hand it manuals and guards
// explicitly. It is not safe for concurrent use (the core is
// single-threaded cooperative, spec.md §5).
type Allocator struct {
	// depletion counts down by whatever callers pass to Tick; no
	// allocation path calls Tick itself. Reaching zero makes Tick report
	// that a recycle is due (spec.md §4.2).
	depletion    int
	depletionCap int

	manuals []Manual
	guards  []interface{}

	log *logrus.Entry
}

// New creates an Allocator whose depletion counter resets to cap after
// each GC cycle.
func New(depletionCap int) *Allocator {
	if depletionCap <= 0 {
		depletionCap = 4096
	}
	return &Allocator{
		depletion:    depletionCap,
		depletionCap: depletionCap,
		manuals:      make([]Manual, 0, 64),
		guards:       make([]interface{}, 0, 16),
		log:          diag.Logger().WithField("component", "pool"),
	}
}

// Tick decrements the depletion counter by n and reports whether a
// recycle is now due. Acting on that report is up to the caller; the
// trampoline in internal/level has no signal source and never calls Tick.
func (a *Allocator) Tick(n int) (shouldRecycle bool) {
	a.depletion -= n
	if a.depletion <= 0 {
		return true
	}
	return false
}

// ResetDepletion is called by the GC after a completed cycle.
func (a *Allocator) ResetDepletion() {
	a.depletion = a.depletionCap
}

// ManualsBaseline returns the current manuals-vector length, to be
// captured as part of a Level's baseline snapshot (spec.md §3.8).
func (a *Allocator) ManualsBaseline() int { return len(a.manuals) }

// TrackManual appends m to the manuals vector: it is now tracked for
// failure rollback until freed or promoted to managed.
func (a *Allocator) TrackManual(m Manual) {
	a.manuals = append(a.manuals, m)
}

// PromoteManual removes m from the manuals vector without freeing it —
// the GC now owns its lifetime.
func (a *Allocator) PromoteManual(m Manual) {
	for i := len(a.manuals) - 1; i >= 0; i-- {
		if a.manuals[i] == m {
			a.manuals = append(a.manuals[:i], a.manuals[i+1:]...)
			return
		}
	}
}

// RollbackManuals frees every manual allocated since baseline, in
// reverse allocation order, and truncates the vector back to it. This is
// the mechanism behind spec.md §7's "free manuals allocated here" on an
// abrupt-failure unwind.
func (a *Allocator) RollbackManuals(baseline int) {
	if baseline > len(a.manuals) {
		baseline = len(a.manuals)
	}
	freed := 0
	for i := len(a.manuals) - 1; i >= baseline; i-- {
		a.manuals[i].ManualFree()
		freed++
	}
	a.manuals = a.manuals[:baseline]
	if freed > 0 {
		a.log.WithFields(logrus.Fields{"freed": freed, "baseline": baseline}).Debug("manuals rollback")
	}
}

// ManualsLive returns a snapshot of currently-tracked manuals; the GC
// roots walk over this (manuals are live "regardless of mark",
// spec.md §4.10).
func (a *Allocator) ManualsLive() []Manual {
	return a.manuals
}

// PushGuard adds node to the guard stack (spec.md §4.10 roots, §5
// "explicit push_guard(node)/drop_guard(node), LIFO-checked").
func (a *Allocator) PushGuard(node interface{}) {
	a.guards = append(a.guards, node)
}

// DropGuard pops the guard stack, panicking if node is not the top entry
// — the discipline is strictly LIFO.
func (a *Allocator) DropGuard(node interface{}) {
	if len(a.guards) == 0 {
		panic("pool: DropGuard on empty guard stack")
	}
	top := a.guards[len(a.guards)-1]
	if top != node {
		panic("pool: DropGuard out of LIFO order")
	}
	a.guards = a.guards[:len(a.guards)-1]
}

// GuardsBaseline returns the current guard-stack depth.
func (a *Allocator) GuardsBaseline() int { return len(a.guards) }

// RollbackGuards drops every guard pushed since baseline — used
// alongside RollbackManuals on failure unwind.
func (a *Allocator) RollbackGuards(baseline int) {
	if baseline < len(a.guards) {
		a.guards = a.guards[:baseline]
	}
}

// GuardsLive returns a snapshot of the guard stack for GC root-walking.
func (a *Allocator) GuardsLive() []interface{} {
	return a.guards
}

// BucketFor returns the size-bucketed pool capacity that should back a
// dynamic allocation of n bytes, or -1 if n exceeds sizeBucketCap and
// should go straight to the platform allocator.
func BucketFor(n int) int {
	if n > sizeBucketCap {
		return -1
	}
	cap := 8
	for cap < n {
		cap <<= 1
	}
	return cap
}
