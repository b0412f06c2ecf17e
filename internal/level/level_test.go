package level

import (
	"testing"

	"github.com/wyrdlang/wyrd/internal/action"
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/pool"
	"github.com/wyrdlang/wyrd/internal/quote"
	"github.com/wyrdlang/wyrd/internal/series"
	"github.com/wyrdlang/wyrd/internal/stub"
	"github.com/wyrdlang/wyrd/internal/wyrderr"
)

// wordCell builds a single unbound plain word cell naming sym.
func wordCell(sym *series.Symbol) cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitWordUnbound(&c, cellcore.HeartWord, sym)
	return c
}

func intCell(n int64) cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitInteger(&c, n)
	return c
}

// symBinder is a fixed word->action table implementing Binder for
// tests, standing in for the module/context resolution a real host
// wires in via SetBinder.
type symBinder struct {
	table map[*series.Symbol]*action.Action
}

func (b *symBinder) ResolveAction(word *cellcore.Cell) (*action.Action, bool) {
	sym, ok := word.BoundNode().(*series.Symbol)
	if !ok {
		return nil, false
	}
	act, ok := b.table[sym]
	return act, ok
}

func TestEvalExecutorDispatchesBoundWord(t *testing.T) {
	identSym := series.Intern("ident-test")
	pl := action.NewParamlist(action.Param{Name: series.Intern("x"), Class: action.ParamNormal})
	identAction := action.New(pl, identSym, func(f *action.Frame) (cellcore.Cell, error) {
		var out cellcore.Cell
		cellcore.CopyCell(&out, f.Ctx.At(1))
		return out, nil
	})

	old := activeBinder
	defer func() { activeBinder = old }()
	SetBinder(&symBinder{table: map[*series.Symbol]*action.Action{identSym: identAction}})

	arr := series.NewArray(2)
	_ = series.Append(arr, wordCell(identSym), intCell(42))

	top := NewLevel(Baseline{}, EvalExecutor)
	top.Feed = action.NewFeed(arr)

	out, err := Run(top)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := cellcore.AsInteger(&out); got != 42 {
		t.Fatalf("result = %d, want 42", got)
	}
}

// TestTrampolineChainDepthIsStackless drives a million-deep chain of
// pushed sublevels — each one carrying a counter one lower than its
// parent's and pushing the next — through Run. A naively Go-recursive
// trampoline would blow the host stack at this depth; a correct one
// advances it as pointer swaps inside Run's own for-loop, so this simply
// has to return.
func TestTrampolineChainDepthIsStackless(t *testing.T) {
	const depth = 1000000

	var countDown Executor
	countDown = func(l *Level) Bounce {
		if l.State == 1 {
			// Re-entered after the child finished; its result is in Out.
			return Bounce{Kind: BounceDone}
		}
		n := l.U.(int)
		if n == 0 {
			cellcore.InitInteger(&l.Out, 0)
			return Bounce{Kind: BounceDone}
		}
		child := NewLevel(l.Baseline, countDown)
		child.U = n - 1
		PushSublevel(l, child)
		l.State = 1
		return Bounce{Kind: BounceContinue}
	}

	top := NewLevel(Baseline{}, countDown)
	top.U = depth

	out, err := Run(top)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := cellcore.AsInteger(&out); got != 0 {
		t.Fatalf("result = %d, want 0", got)
	}
}

// TestUserDefinedActionPushesBodyLevel exercises a user-defined action
// (Body set, Dispatch unreachable) whose single-statement body
// self-evaluates to the bound parameter, confirming ActionExecutor's
// body path — not just its native-Dispatch path — runs end to end
// through the trampoline.
func TestUserDefinedActionPushesBodyLevel(t *testing.T) {
	identSym := series.Intern("body-ident-test")
	pl := action.NewParamlist(action.Param{Name: series.Intern("x"), Class: action.ParamNormal})

	bodyArr := series.NewArray(1)
	_ = series.Append(bodyArr, wordCell(series.Intern("x")))
	var bodyCell cellcore.Cell
	cellcore.InitArrayLike(&bodyCell, cellcore.HeartBlock, bodyArr.S)

	ident := action.NewUserDefined(pl, identSym, &bodyCell)

	old := activeBinder
	defer func() { activeBinder = old }()
	SetBinder(&symBinder{table: map[*series.Symbol]*action.Action{identSym: ident}})

	arr := series.NewArray(2)
	_ = series.Append(arr, wordCell(identSym), intCell(7))

	top := NewLevel(Baseline{}, EvalExecutor)
	top.Feed = action.NewFeed(arr)

	out, err := Run(top)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// A bare word naming a parameter is left as itself by this test's
	// minimal evaluator (word->value environment lookup is the
	// binder's job, not EvalExecutor's) — so the body evaluates to the
	// word cell, not 7. Confirm it at least ran the body, not the
	// unreachable native fallback.
	if out.Heart() != cellcore.HeartWord {
		t.Fatalf("body result heart = %v, want word", out.Heart())
	}
}

func TestEvalBranchBlankProducesNullAntiform(t *testing.T) {
	var blank cellcore.Cell
	cellcore.InitBlank(&blank)

	l := NewLevel(Baseline{}, func(l *Level) Bounce { return EvalBranch(l, &blank, nil) })
	out, err := Run(l)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Heart() != cellcore.HeartWord || out.Quote() != cellcore.QuoteAntiform {
		t.Fatalf("blank branch = heart %v quote %v, want word antiform", out.Heart(), out.Quote())
	}
}

// TestEvalBranchQuotedValueUnwrapsOneLevel exercises the exact case
// spec.md §4.9 names for branch continuation ("a quoted value (unquote
// it)"): a depth-1 quoted integer used as a branch must come back plain
// and unchanged, not panic crossing into antiform.
func TestEvalBranchQuotedValueUnwrapsOneLevel(t *testing.T) {
	var branch cellcore.Cell
	cellcore.InitInteger(&branch, 9)
	quote.Quotify(&branch, 1)

	l := NewLevel(Baseline{}, func(l *Level) Bounce { return EvalBranch(l, &branch, nil) })
	out, err := Run(l)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if kind, _ := quote.Classify(&out); kind != quote.KindPlain {
		t.Fatalf("branch result kind = %v, want plain", kind)
	}
	if got := cellcore.AsInteger(&out); got != 9 {
		t.Fatalf("branch result = %d, want 9", got)
	}
}

// TestRunRollsBackManualsAndGuardsOnThrow confirms a BounceThrown tick
// runs the raising level's own cleanup (spec.md §7: "baseline rollback,
// drop guards pushed at this level, free manuals allocated here") before
// handing Thrown up the chain, rather than only re-threading the payload.
func TestRunRollsBackManualsAndGuardsOnThrow(t *testing.T) {
	alloc := pool.New(0)

	top := NewLevel(Baseline{ManualsCount: alloc.ManualsBaseline(), GuardsCount: alloc.GuardsBaseline()}, func(l *Level) Bounce {
		m := stub.NewManual(stub.FlavorArray)
		alloc.TrackManual(m)
		alloc.PushGuard(m)
		l.Thrown = ThrownPayload{Label: "fail", Cause: wyrderr.NewFail("boom"), Active: true}
		return Bounce{Kind: BounceThrown}
	})
	top.Alloc = alloc

	if _, err := Run(top); err == nil {
		t.Fatalf("expected Run to surface the unhandled failure")
	}
	if got := alloc.ManualsBaseline(); got != 0 {
		t.Fatalf("manuals vector not rolled back, still %d deep", got)
	}
	if got := alloc.GuardsBaseline(); got != 0 {
		t.Fatalf("guard stack not rolled back, still %d deep", got)
	}
}

func TestEvalBranchBlockEvaluatesBody(t *testing.T) {
	arr := series.NewArray(1)
	_ = series.Append(arr, intCell(9))
	var block cellcore.Cell
	cellcore.InitArrayLike(&block, cellcore.HeartBlock, arr.S)

	l := NewLevel(Baseline{}, func(l *Level) Bounce { return EvalBranch(l, &block, nil) })
	out, err := Run(l)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := cellcore.AsInteger(&out); got != 9 {
		t.Fatalf("block branch result = %d, want 9", got)
	}
}
