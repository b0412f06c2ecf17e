package level

import (
	"github.com/wyrdlang/wyrd/internal/action"
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
	"github.com/wyrdlang/wyrd/internal/stub"
	"github.com/wyrdlang/wyrd/internal/wyrderr"
)

// actionState is the ActionExecutor's u-union entry (spec.md §3.8's
// "for the action executor: the action being called and its feed").
type actionState struct {
	act  *action.Action
	feed *action.Feed
}

const (
	actionPhaseFulfill uint8 = iota
	actionPhaseReturnCheck
)

// ActionExecutor runs one action call (spec.md §4.8's
// fulfill/typecheck/dispatch/return-check sequence). A native action
// (Body nil) dispatches and finishes in a single tick. A user-defined
// action instead pushes its Body as an EvalExecutor sublevel and
// resumes in actionPhaseReturnCheck once that sublevel's result lands
// in l.Out — so a chain of user-defined calls, however deep, advances
// through Run's loop as a sequence of pointer swaps rather than nested
// Go calls. Argument-expression evaluation, by contrast, does recurse
// in Go via evalOneExpression; that recursion is bounded by the call
// site's static expression nesting, not by how many times a function
// calls itself, so it never threatens the stackless-self-call property
// this executor exists to provide.
func ActionExecutor(l *Level) Bounce {
	if l.Thrown.Active {
		return Bounce{Kind: BounceThrown}
	}
	st := l.U.(*actionState)

	switch l.State {
	case actionPhaseFulfill:
		f := action.MakeFrame(st.act)
		l.Ctx = f.Ctx

		if err := action.Fulfill(f, st.feed, evalOneExpression); err != nil {
			return failBounce(l, err)
		}
		if err := action.Typecheck(f); err != nil {
			return failBounce(l, err)
		}

		if st.act.Body != nil {
			body, ok := st.act.Body.BoundNode().(*stub.Stub)
			if !ok {
				return failBounce(l, wyrderr.NewFail("action: body cell missing its array"))
			}
			child := NewLevel(l.Baseline, EvalExecutor)
			child.Feed = action.NewFeed(series.WrapArray(body))
			child.Ctx = f.Ctx
			PushSublevel(l, child)
			l.State = actionPhaseReturnCheck
			return Bounce{Kind: BounceContinue}
		}

		out, err := st.act.Dispatch(f)
		if err != nil {
			return failBounce(l, err)
		}
		return finishCall(l, st.act, out)

	case actionPhaseReturnCheck:
		return finishCall(l, st.act, l.Out)

	default:
		return failBounce(l, wyrderr.NewFail("action: invalid executor state"))
	}
}

func finishCall(l *Level, act *action.Action, out cellcore.Cell) Bounce {
	if act.Paramlist.Return.Filter != nil && !act.Paramlist.Return.Filter.Accepts(&out) {
		return failBounce(l, wyrderr.NewFail("action: return value does not match return filter"))
	}
	cellcore.CopyCell(&l.Out, &out)
	return Bounce{Kind: BounceDone}
}

// failBounce raises err as a Thrown payload, stamping it with the Level
// chain active at the point of raise (spec.md §7's stack-capture
// requirement, generalized from the teacher's AddStackFrame pattern —
// see internal/wyrderr).
func failBounce(l *Level, err error) Bounce {
	if we, ok := err.(*wyrderr.Error); ok {
		err = we.WithStack(captureStack(l))
	}
	l.Thrown = ThrownPayload{Label: "fail", Cause: err, Active: true}
	return Bounce{Kind: BounceThrown}
}

// captureStack walks l's Prior chain, innermost first, into the frame
// list a raised error carries.
func captureStack(l *Level) []wyrderr.Frame {
	var frames []wyrderr.Frame
	depth := 0
	for cur := l; cur != nil; cur = cur.Prior {
		label := "eval"
		if st, ok := cur.U.(*actionState); ok && st.act.Label != nil {
			label = st.act.Label.Text()
		}
		frames = append(frames, wyrderr.Frame{Label: label, Depth: depth})
		depth++
	}
	return frames
}

// evalOneExpression implements action.Evaluator: it consumes exactly
// one expression from feed, evaluating a bound word in call position
// and a group's contents (its last value is the result), and leaves
// everything else as itself. A native action recurses
// straight into action.Call; a user-defined one (Body set) instead goes
// through a nested Run of its own ActionExecutor level, so its body
// still gets the trampoline's statement-position handling for whatever
// it calls. Either way the Go-level recursion here is bounded by the
// argument expression's own static nesting, not by how many times the
// called function recurses into itself — that unbounded case only
// arises in statement position, which EvalExecutor handles by pushing a
// sublevel directly rather than ever routing through this function.
func evalOneExpression(feed *action.Feed) (cellcore.Cell, error) {
	if feed.AtEnd() {
		var blank cellcore.Cell
		cellcore.InitBlank(&blank)
		return blank, nil
	}
	c := feed.Next()
	if c.Heart() == cellcore.HeartWord {
		if act, ok := lookupBoundAction(c); ok {
			if act.Body != nil {
				child := NewLevel(Baseline{}, ActionExecutor)
				child.U = &actionState{act: act, feed: feed}
				return Run(child)
			}
			return action.Call(act, feed, evalOneExpression)
		}
	}
	if c.Heart() == cellcore.HeartGroup {
		if s, ok := c.BoundNode().(*stub.Stub); ok {
			inner := action.NewFeed(series.WrapArray(s))
			return evalBlockBody(inner)
		}
	}
	var out cellcore.Cell
	cellcore.CopyCell(&out, c)
	return out, nil
}

// evalBlockBody threads evalOneExpression across every element of inner
// in turn, returning the last expression's value — group/block bodies
// evaluate every element for effect but yield only the final result
// (spec.md §4.9's array evaluator).
func evalBlockBody(inner *action.Feed) (cellcore.Cell, error) {
	var out cellcore.Cell
	cellcore.InitBlank(&out)
	for !inner.AtEnd() {
		v, err := evalOneExpression(inner)
		if err != nil {
			return cellcore.Cell{}, err
		}
		out = v
	}
	return out, nil
}
