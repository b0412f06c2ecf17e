package level

import (
	"github.com/wyrdlang/wyrd/internal/cellcore"
)

// EvalExecutor steps l.Feed element by element, leaving the last
// expression's result in l.Out (spec.md §4.9's array evaluator). A
// bound word in statement position pushes a fresh ActionExecutor level
// via BounceContinue rather than recursing in Go: this is what gives a
// self-recursive chain of calls — however deep — a flat Go call stack,
// since each "call" is a pointer swap inside Run's loop, not a nested
// invocation of EvalExecutor itself.
func EvalExecutor(l *Level) Bounce {
	if l.Thrown.Active {
		return Bounce{Kind: BounceThrown}
	}
	for {
		if l.Feed.AtEnd() {
			return Bounce{Kind: BounceDone}
		}
		c := l.Feed.Next()

		if c.Heart() == cellcore.HeartWord {
			if act, ok := lookupBoundAction(c); ok {
				child := NewLevel(l.Baseline, ActionExecutor)
				child.U = &actionState{act: act, feed: l.Feed}
				PushSublevel(l, child)
				return Bounce{Kind: BounceContinue}
			}
		}

		cellcore.CopyCell(&l.Out, c)
	}
}
