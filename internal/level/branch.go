package level

import (
	"github.com/wyrdlang/wyrd/internal/action"
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/quote"
	"github.com/wyrdlang/wyrd/internal/series"
	"github.com/wyrdlang/wyrd/internal/stub"
	"github.com/wyrdlang/wyrd/internal/wyrderr"
)

var nullSymbol = series.Intern("null")

// EvalBranch implements spec.md §4.9's branch continuation: the uniform
// rule every conditional/loop construct uses to turn a branch argument
// into a result, dispatching on the branch cell's quote/heart rather
// than requiring each construct to reimplement it.
//
//   - a quoted value unwraps one level of quoting and is returned as-is
//   - blank produces null: plain if l is accumulating a meta result,
//     antiform otherwise
//   - a block or group is evaluated as a body, its last expression's
//     value becoming the result
//   - an action is invoked, passed withArg if non-nil (an array branch
//     taking the triggering condition as its sole argument)
//
// Any other branch heart is an error: it is raised as a Fail through
// failBounce, so the level returns BounceThrown.
func EvalBranch(l *Level, branch *cellcore.Cell, withArg *cellcore.Cell) Bounce {
	if branch.Heart() == cellcore.HeartBlank {
		cellcore.InitWordUnbound(&l.Out, cellcore.HeartWord, nullSymbol)
		if l.Flags&FlagMetaResult == 0 {
			l.Out.SetQuote(cellcore.QuoteAntiform)
		}
		return Bounce{Kind: BounceDone}
	}

	if kind, _ := quote.Classify(branch); kind == quote.KindQuoted {
		cellcore.CopyCell(&l.Out, branch)
		quote.Unquotify(&l.Out, 1)
		return Bounce{Kind: BounceDone}
	}

	switch branch.Heart() {
	case cellcore.HeartBlock, cellcore.HeartGroup:
		s, ok := branch.BoundNode().(*stub.Stub)
		if !ok {
			return failBounce(l, wyrderr.NewFail("branch: block/group cell missing its array"))
		}
		child := NewLevel(l.Baseline, EvalExecutor)
		child.Feed = action.NewFeed(series.WrapArray(s))
		PushSublevel(l, child)
		return Bounce{Kind: BounceDelegate}

	case cellcore.HeartAction:
		act, ok := action.FromCell(branch)
		if !ok {
			return failBounce(l, wyrderr.NewFail("branch: action cell missing its Action"))
		}
		argCount := 0
		if withArg != nil {
			argCount = 1
		}
		arr := series.NewArray(argCount)
		if withArg != nil {
			_ = series.Append(arr, *withArg)
		}
		child := NewLevel(l.Baseline, ActionExecutor)
		child.U = &actionState{act: act, feed: action.NewFeed(arr)}
		PushSublevel(l, child)
		return Bounce{Kind: BounceDelegate}

	default:
		return failBounce(l, wyrderr.NewFail("branch: unsupported branch type "+branch.Heart().String()))
	}
}
