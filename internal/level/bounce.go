package level

// BounceKind is a single trampoline tick's instruction (spec.md §4.9):
// what Run should do with the level that just returned this Bounce.
type BounceKind uint8

const (
	// BounceContinue means a sublevel was pushed; Run switches to it
	// and, when it finishes, re-enters this level's executor with the
	// result sitting in Out.
	BounceContinue BounceKind = iota
	// BounceDelegate is like BounceContinue except this level is fully
	// done contributing: when the pushed sublevel finishes, its result
	// becomes the result of *this level's own parent*, skipping this
	// level entirely (spec.md's "tail-call" bounce, used by branch
	// continuation so an evaluated branch's result is the branching
	// level's result without an extra hop).
	BounceDelegate
	// BounceThrown propagates Thrown to the nearest ancestor level.
	BounceThrown
	// BounceDone means this level is finished; its result is in Out.
	BounceDone
	// BounceRedo reruns this same level from RedoPhase instead of
	// advancing to a sublevel or finishing.
	BounceRedo
)

// Bounce is an executor's return value for one trampoline tick.
// RedoPhase only matters when Kind is BounceRedo.
type Bounce struct {
	Kind      BounceKind
	RedoPhase uint8
}
