package action

import "github.com/wyrdlang/wyrd/internal/cellcore"

// TypeFilter typechecks a single argument or return cell against a
// parameter's accepted-type set (spec.md §3.6's "optional filter-array
// listing accepted types/type-constraints"). The filter-array contract
// is fixed by spec.md; its full predicate vocabulary is an Open
// Question the spec explicitly leaves unresolved ("the specification
// leaves the filter-array contract but not its full predicate
// vocabulary"). SPEC_FULL.md §4 resolves it as a closed, minimal
// built-in vocabulary (HeartSet, AnyValue, AnyElement below) plus this
// interface as the extension point for richer predicates (refinements,
// user-defined constraint functions) that this module does not itself
// implement.
type TypeFilter interface {
	Accepts(c *cellcore.Cell) bool
	String() string
}

// HeartSet accepts a cell whose Heart is exactly one of the listed
// hearts, regardless of quote state.
type HeartSet []cellcore.Heart

func (hs HeartSet) Accepts(c *cellcore.Cell) bool {
	for _, h := range hs {
		if c.Heart() == h {
			return true
		}
	}
	return false
}

func (hs HeartSet) String() string {
	s := ""
	for i, h := range hs {
		if i > 0 {
			s += "/"
		}
		s += h.String()
	}
	return s
}

// AnyValue accepts any stable cell (spec.md §3.2's Value tier: no
// unstable antiforms).
type AnyValue struct{}

func (AnyValue) Accepts(c *cellcore.Cell) bool { return cellcore.IsStable(c) }
func (AnyValue) String() string                { return "any-value!" }

// AnyElement accepts any cell legal inside an array (no antiform at
// all — spec.md §3.2's Element tier).
type AnyElement struct{}

func (AnyElement) Accepts(c *cellcore.Cell) bool { return cellcore.IsElementSafe(c) }
func (AnyElement) String() string                { return "any-element!" }
