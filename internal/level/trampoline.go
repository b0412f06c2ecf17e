package level

import "github.com/wyrdlang/wyrd/internal/cellcore"

// Run drives top, and whatever chain of sublevels it pushes, to
// completion (spec.md §4.9's trampoline loop). The Go call stack never
// grows with the depth of that chain: each tick is one call to the
// current level's Executor, and "calling" another level is a pointer
// swap, not a Go-level recursive call. This is what lets a self-calling
// action run a million deep without exhausting the host stack.
func Run(top *Level) (cellcore.Cell, error) {
	cur := top
	for {
		b := cur.Executor(cur)
		switch b.Kind {
		case BounceContinue:
			child := cur.pushedChild
			cur.pushedChild = nil
			cur = child

		case BounceDelegate:
			child := cur.pushedChild
			cur.pushedChild = nil
			child.delegated = true
			child.delegateParent = parentOf(cur)
			cur = child

		case BounceRedo:
			cur.State = b.RedoPhase

		case BounceThrown:
			cur.rollback()
			parent := parentOf(cur)
			if parent == nil {
				return cellcore.Cell{}, cur.Thrown.asError()
			}
			parent.Thrown = cur.Thrown
			cur = parent

		case BounceDone:
			parent := parentOf(cur)
			if parent == nil {
				return cur.Out, nil
			}
			cellcore.CopyCell(&parent.Out, &cur.Out)
			cur = parent
		}
	}
}

// parentOf returns the level that should resume once cur finishes: its
// delegate target if one was set (BounceDelegate) — which may itself be
// nil, meaning "terminate here" — otherwise its Prior.
func parentOf(l *Level) *Level {
	if l.delegated {
		return l.delegateParent
	}
	return l.Prior
}
