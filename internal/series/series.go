// Package series implements the typed views over a Stub described in
// spec.md §3.4: byte series/binary, UTF-8 strings with bookmarks,
// interned symbols, cell arrays, and two-cell pairings. It is the layer
// that turns a flavor-tagged Stub into something callers actually
// manipulate (length, index, freeze) without reaching into stub
// internals directly.
package series

import (
	"github.com/wyrdlang/wyrd/internal/stub"
)

// Series wraps a *stub.Stub with the operations common to every flavor
// (spec.md §4.3): make, expand, used/set-used, freeze, and the
// read-only check every mutator must call first.
type Series struct {
	S    *stub.Stub
	Wide int // element width: 1 for byte series, sizeof(Cell)-equivalent for arrays
}

// Make allocates a new Series of the given flavor and capacity.
func Make(flavor stub.Flavor, capacity int) *Series {
	s := stub.New(flavor)
	wide := 1
	switch flavor {
	case stub.FlavorArray, stub.FlavorVarlist, stub.FlavorKeylist, stub.FlavorDetails:
		wide = cellWide
		s.EnsureDynamicCells(capacity)
	default:
		s.EnsureDynamicBytes(capacity)
	}
	return &Series{S: s, Wide: wide}
}

// cellWide is a nominal "width" for cell-backed series; it has no byte
// meaning in this Go port (cells aren't packed into a []byte) but is
// kept so callers can still ask "what is this series' element width"
// uniformly across flavors, matching spec.md's wide field.
const cellWide = 1

// FailIfReadOnly consolidates the PROTECTED/FROZEN/HOLD/AUTO_LOCKED
// check (spec.md §4.3) and returns a descriptive error if s may not be
// mutated right now.
func FailIfReadOnly(s *Series) error {
	if r := s.S.CheckReadOnly(); r != stub.Writable {
		return readOnlyError{r}
	}
	return nil
}

type readOnlyError struct{ reason stub.ReadOnlyReason }

func (e readOnlyError) Error() string { return "series is " + e.reason.String() }

// Used returns the series' current element count.
func (s *Series) Used() int { return s.S.Used() }

// SetUsed sets the series' element count (spec.md §4.3 set_used/used).
// For a string series, callers must separately update the codepoint
// length — see text.go.
func (s *Series) SetUsed(n int) { s.S.SetUsed(n) }

// FreezeShallow sets the one-way shallow-frozen bit (spec.md §4.3).
func (s *Series) FreezeShallow() { s.S.FreezeShallow() }

// FreezeDeep sets the one-way deep-frozen bit and recurses into array
// content (spec.md §4.3, §3.4 "Arrays may be frozen... deep").
func (s *Series) FreezeDeep() { s.S.FreezeDeep() }

// IsFrozen reports whether s is frozen at all (shallow or deep).
func (s *Series) IsFrozen() bool {
	return s.S.IsFrozenShallow() || s.S.IsFrozenDeep()
}
