// Package stub implements the heap node at the center of the series/
// context/action substrate (spec.md §3.3): a fixed 8-pointer-equivalent
// struct whose content is either two inline cells or a dynamic
// {data,used,rest,bonus} descriptor, plus the link/misc/info fields whose
// meaning is per-flavor.
package stub

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
)

// LeaderFlags are the shared bits every Stub carries regardless of
// flavor (spec.md §3.3).
type LeaderFlags uint16

const (
	LeaderManaged LeaderFlags = 1 << iota
	LeaderMarked
	LeaderInaccessible
	LeaderDynamic
	LeaderFixedSize
	LeaderBlack // GC tri-color convenience bit; unused by the simple
	// mark-and-sweep in internal/gc today but kept so a future
	// incremental collector has somewhere to put it without a layout
	// change, matching the teacher's habit of reserving flag bits ahead
	// of the feature landing (see bytecode.go's OP_* gaps).
	LeaderFrozenShallow
	LeaderFrozenDeep
	LeaderHold
	LeaderProtected
	LeaderAutoLocked

	leaderLinkNeedsMark
	leaderMiscNeedsMark
	leaderInfoNeedsMark
)

// dynamicData is the {data,used,rest,bonus} descriptor for a Stub whose
// content didn't fit inline. Both a byte backing store and a cell
// backing store are present on the struct; exactly one is populated,
// selected by the owning Stub's Flavor. bias overlays Bonus per
// spec.md §3.3.
type dynamicData struct {
	bytes []byte
	cells []cellcore.Cell
	used  int
	bias  int
}

// Stub is the heap node. AppendCells and EnsureDynamicCells always keep
// cell content in the dynamic descriptor (dyn); the two inline cells are
// reached only through InlineCell, and GCMark walks them only while dyn
// is nil. Pairings are a separate type (series.Pairing) and do not use
// them.
type Stub struct {
	Leader LeaderFlags
	Flavor Flavor

	infoBits uint32
	infoNode cellcore.Node

	link     interface{}
	misc     interface{}
	dyn      *dynamicData
	inline   [2]cellcore.Cell
}

// New allocates a Stub of the given flavor, born managed. The pool
// allocator (internal/pool) tracks manual/size-class bookkeeping
// separately; Stub itself is pool-agnostic — in this Go port, stubs are
// ordinary heap values and the "pool" is the process's allocator, with
// internal/pool only modeling the manuals/guards/depletion bookkeeping
// spec.md actually tests observable behavior for (see DESIGN.md).
func New(flavor Flavor) *Stub {
	s := &Stub{Flavor: flavor, Leader: LeaderManaged}
	registry = append(registry, s)
	return s
}

// NewManual allocates an unmanaged Stub. Callers register it with a
// pool.Allocator's manuals vector themselves (pool.Allocator.TrackManual
// accepts anything with a ManualFree method, which *Stub has below) —
// keeping stub free of a dependency on the pool package.
func NewManual(flavor Flavor) *Stub {
	return &Stub{Flavor: flavor}
}

// ManualFree releases s's backing storage immediately — for a Go port
// this just drops references so the Go GC can reclaim them; there is no
// separate free-list to return slots to.
func (s *Stub) ManualFree() {
	s.dyn = nil
	s.link = nil
	s.misc = nil
	s.infoNode = nil
	s.inline = [2]cellcore.Cell{}
}

// Manage promotes a manual Stub to GC-managed, removing it from whatever
// manuals vector it was tracked in (the caller does the vector removal;
// Manage only flips the bit so IsManaged reflects it) and enrolling it in
// the collector's registry so a later sweep can see it.
func (s *Stub) Manage() {
	s.Leader |= LeaderManaged
	registry = append(registry, s)
}

func (s *Stub) IsManaged() bool   { return s.Leader&LeaderManaged != 0 }
func (s *Stub) IsDynamic() bool   { return s.Leader&LeaderDynamic != 0 }
func (s *Stub) IsFrozenShallow() bool { return s.Leader&LeaderFrozenShallow != 0 }
func (s *Stub) IsFrozenDeep() bool    { return s.Leader&LeaderFrozenDeep != 0 }

// ---------------------------------------------------------------------
// GC marking (implements cellcore.Node)
// ---------------------------------------------------------------------

// GCMark marks s (and everything it references) reachable. Idempotent
// within a cycle: a stub already carrying LeaderMarked returns
// immediately, which is what keeps cyclic structures (a context's
// archetype referencing its own varlist) from recursing forever.
func (s *Stub) GCMark() {
	if s.Leader&LeaderMarked != 0 {
		return
	}
	s.Leader |= LeaderMarked

	if s.Leader&leaderInfoNeedsMark != 0 && s.infoNode != nil {
		s.infoNode.GCMark()
	}
	if s.Leader&leaderLinkNeedsMark != 0 {
		if n, ok := s.link.(cellcore.Node); ok && n != nil {
			n.GCMark()
		}
	}
	if s.Leader&leaderMiscNeedsMark != 0 {
		if n, ok := s.misc.(cellcore.Node); ok && n != nil {
			n.GCMark()
		}
	}

	if s.dyn != nil {
		for i := range s.dyn.cells {
			cellcore.WalkNodes(&s.dyn.cells[i], func(n cellcore.Node) { n.GCMark() })
		}
	} else {
		for i := range s.inline {
			cellcore.WalkNodes(&s.inline[i], func(n cellcore.Node) { n.GCMark() })
		}
	}
}

// ClearMark is called by the GC at the start of a cycle.
func (s *Stub) ClearMark() { s.Leader &^= LeaderMarked }

// IsMarked reports whether s survived the most recent mark phase.
func (s *Stub) IsMarked() bool { return s.Leader&LeaderMarked != 0 }

// ---------------------------------------------------------------------
// link / misc / info accessors
// ---------------------------------------------------------------------

// SetLink stores v as the per-flavor link field. If v is a
// cellcore.Node, needsMark should be true so GCMark walks it.
func (s *Stub) SetLink(v interface{}, needsMark bool) {
	s.link = v
	if needsMark {
		s.Leader |= leaderLinkNeedsMark
	} else {
		s.Leader &^= leaderLinkNeedsMark
	}
}

func (s *Stub) Link() interface{} { return s.link }

func (s *Stub) SetMisc(v interface{}, needsMark bool) {
	s.misc = v
	if needsMark {
		s.Leader |= leaderMiscNeedsMark
	} else {
		s.Leader &^= leaderMiscNeedsMark
	}
}

func (s *Stub) Misc() interface{} { return s.misc }

func (s *Stub) SetInfoBits(bits uint32) {
	s.infoBits = bits
	s.infoNode = nil
	s.Leader &^= leaderInfoNeedsMark
}

func (s *Stub) InfoBits() uint32 { return s.infoBits }

func (s *Stub) SetInfoNode(n cellcore.Node) {
	s.infoNode = n
	s.Leader |= leaderInfoNeedsMark
}

func (s *Stub) InfoNode() cellcore.Node { return s.infoNode }

// ---------------------------------------------------------------------
// content access
// ---------------------------------------------------------------------

// InlineCell returns a pointer to inline slot i (0 or 1), valid only
// when s is not dynamic.
func (s *Stub) InlineCell(i int) *cellcore.Cell { return &s.inline[i] }

// EnsureDynamicCells promotes s to a dynamic cell-backed descriptor with
// capacity for at least n cells, preserving existing dynamic cells. The
// inline cells are not copied into the new descriptor. Flavor must be
// FlavorArray/Varlist/Keylist/Details/Pairlist.
func (s *Stub) EnsureDynamicCells(n int) {
	if s.dyn != nil {
		if cap(s.dyn.cells) >= n {
			return
		}
		grown := make([]cellcore.Cell, len(s.dyn.cells), n)
		copy(grown, s.dyn.cells)
		s.dyn.cells = grown
		return
	}
	cells := make([]cellcore.Cell, 0, n)
	s.dyn = &dynamicData{cells: cells}
	s.Leader |= LeaderDynamic
}

// approxCellBytes estimates a Cell's footprint for Footprint's reporting
// purposes only — the Go struct's actual size depends on platform
// pointer width and alignment, which GC diagnostics have no need to
// track exactly.
const approxCellBytes = 32

// Footprint estimates s's backing storage in bytes, for internal/gc's
// cycle diagnostics. Inline stubs (no dyn) report 0: their storage is
// part of the Stub struct itself, not a separate allocation reclaimed by
// a sweep.
func (s *Stub) Footprint() int {
	if s.dyn == nil {
		return 0
	}
	return len(s.dyn.bytes) + len(s.dyn.cells)*approxCellBytes
}

// Cells returns the dynamic cell slice (length == Used()).
func (s *Stub) Cells() []cellcore.Cell {
	if s.dyn == nil {
		return nil
	}
	return s.dyn.cells
}

// AppendCells grows the dynamic cell array by appending cs, updating
// Used. Panics if s is read-only (callers must call FailIfReadOnly
// first — see internal/series).
func (s *Stub) AppendCells(cs ...cellcore.Cell) {
	if s.CheckReadOnly() != Writable {
		panic("stub: AppendCells on a read-only stub")
	}
	s.EnsureDynamicCells(len(s.Cells()) + len(cs))
	s.dyn.cells = append(s.dyn.cells, cs...)
	s.dyn.used = len(s.dyn.cells)
}

// SetUsed truncates or records the logical length of the dynamic content
// (bytes or cells, whichever this flavor uses).
func (s *Stub) SetUsed(n int) {
	if s.dyn == nil {
		return
	}
	s.dyn.used = n
	if s.dyn.cells != nil && n <= len(s.dyn.cells) {
		s.dyn.cells = s.dyn.cells[:n]
	}
	if s.dyn.bytes != nil && n <= len(s.dyn.bytes) {
		s.dyn.bytes = s.dyn.bytes[:n]
	}
}

// Used returns the logical length of the dynamic content.
func (s *Stub) Used() int {
	if s.dyn == nil {
		return 0
	}
	return s.dyn.used
}

// EnsureDynamicBytes promotes s to a dynamic byte-backed descriptor
// (binary/string flavors) with capacity for at least n bytes.
func (s *Stub) EnsureDynamicBytes(n int) {
	if s.dyn != nil {
		if cap(s.dyn.bytes) >= n {
			return
		}
		grown := make([]byte, len(s.dyn.bytes), n)
		copy(grown, s.dyn.bytes)
		s.dyn.bytes = grown
		return
	}
	s.dyn = &dynamicData{bytes: make([]byte, 0, n)}
	s.Leader |= LeaderDynamic
}

// Bytes returns the dynamic byte slice.
func (s *Stub) Bytes() []byte {
	if s.dyn == nil {
		return nil
	}
	return s.dyn.bytes
}

// SetBytes replaces the dynamic byte content wholesale and updates Used.
func (s *Stub) SetBytes(b []byte) {
	s.EnsureDynamicBytes(len(b))
	s.dyn.bytes = append(s.dyn.bytes[:0], b...)
	s.dyn.used = len(b)
}

// Bias returns the dynamic descriptor's bias (the "bonus overlay" for
// biased buffers, spec.md §3.3).
func (s *Stub) Bias() int {
	if s.dyn == nil {
		return 0
	}
	return s.dyn.bias
}

func (s *Stub) SetBias(b int) {
	if s.dyn != nil {
		s.dyn.bias = b
	}
}

// ---------------------------------------------------------------------
// read-only checks (spec.md §4.3 fail_if_read_only)
// ---------------------------------------------------------------------

// ReadOnlyReason names the distinct error kind FailIfReadOnly should
// raise; zero value means writable.
type ReadOnlyReason uint8

const (
	Writable ReadOnlyReason = iota
	ReasonProtected
	ReasonFrozenShallow
	ReasonFrozenDeep
	ReasonHold
	ReasonAutoLocked
)

// CheckReadOnly consolidates the PROTECTED / FROZEN / HOLD / AUTO_LOCKED
// check into one call, per spec.md §4.3, returning which one applies (in
// priority order) or Writable if none do.
func (s *Stub) CheckReadOnly() ReadOnlyReason {
	switch {
	case s.Leader&LeaderProtected != 0:
		return ReasonProtected
	case s.Leader&LeaderFrozenDeep != 0:
		return ReasonFrozenDeep
	case s.Leader&LeaderFrozenShallow != 0:
		return ReasonFrozenShallow
	case s.Leader&LeaderHold != 0:
		return ReasonHold
	case s.Leader&LeaderAutoLocked != 0:
		return ReasonAutoLocked
	default:
		return Writable
	}
}

func (r ReadOnlyReason) String() string {
	switch r {
	case Writable:
		return "writable"
	case ReasonProtected:
		return "protected"
	case ReasonFrozenShallow:
		return "frozen (shallow)"
	case ReasonFrozenDeep:
		return "frozen (deep)"
	case ReasonHold:
		return "held"
	case ReasonAutoLocked:
		return "auto-locked"
	default:
		return "unknown"
	}
}

// FreezeShallow sets the one-way shallow-frozen bit.
func (s *Stub) FreezeShallow() { s.Leader |= LeaderFrozenShallow }

// FreezeDeep sets the one-way deep-frozen bit, and — for an array stub —
// recursively freezes every array-shaped element reachable through it.
func (s *Stub) FreezeDeep() {
	s.Leader |= LeaderFrozenDeep | LeaderFrozenShallow
	if s.dyn == nil {
		return
	}
	for i := range s.dyn.cells {
		cellcore.WalkNodes(&s.dyn.cells[i], func(n cellcore.Node) {
			if child, ok := n.(*Stub); ok && (child.Flavor == FlavorArray) {
				child.FreezeDeep()
			}
		})
	}
}

// ---------------------------------------------------------------------
// Collector registry
// ---------------------------------------------------------------------

// registry holds every Stub the collector (internal/gc) is responsible
// for sweeping. A real host has an arena it can walk; a Go port has only
// the runtime heap, which offers no way to enumerate live values of a
// type, so New and Manage enroll a stub here the moment it becomes
// GC-managed. A manual stub (NewManual, never promoted) never appears —
// its lifetime is the caller's responsibility via pool.Allocator, not
// the collector's.
var registry []*Stub

// Registered returns every stub currently tracked for sweeping. The
// returned slice is registry's own backing array; callers must not
// retain it across a Sweep call.
func Registered() []*Stub { return registry }

// Sweep removes every registered stub for which keep returns false,
// releasing its storage via ManualFree first, and reports how many were
// removed and their combined Footprint. internal/gc calls this once per
// cycle with keep checking IsMarked, after walking roots to mark
// everything still reachable.
func Sweep(keep func(*Stub) bool) (freed int, bytesReclaimed int) {
	live := registry[:0]
	for _, s := range registry {
		if keep(s) {
			live = append(live, s)
			continue
		}
		bytesReclaimed += s.Footprint()
		s.ManualFree()
		freed++
	}
	registry = live
	return freed, bytesReclaimed
}
