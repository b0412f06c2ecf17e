package action

import (
	"testing"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

func intFeed(ns ...int64) *Feed {
	arr := series.NewArray(len(ns))
	cells := make([]cellcore.Cell, len(ns))
	for i, n := range ns {
		cellcore.InitInteger(&cells[i], n)
	}
	_ = series.Append(arr, cells...)
	return NewFeed(arr)
}

func noEval(feed *Feed) (cellcore.Cell, error) {
	if feed.AtEnd() {
		var blank cellcore.Cell
		cellcore.InitBlank(&blank)
		return blank, nil
	}
	var out cellcore.Cell
	cellcore.CopyCell(&out, feed.Next())
	return out, nil
}

func TestCallNormalParams(t *testing.T) {
	pl := NewParamlist(
		Param{Name: series.Intern("a"), Class: ParamNormal, Filter: HeartSet{cellcore.HeartInteger}},
		Param{Name: series.Intern("b"), Class: ParamNormal, Filter: HeartSet{cellcore.HeartInteger}},
	)
	add := New(pl, series.Intern("add"), func(f *Frame) (cellcore.Cell, error) {
		a := cellcore.AsInteger(f.Ctx.At(1))
		b := cellcore.AsInteger(f.Ctx.At(2))
		var out cellcore.Cell
		cellcore.InitInteger(&out, a+b)
		return out, nil
	})

	feed := intFeed(3, 4)
	out, err := Call(add, feed, noEval)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got := cellcore.AsInteger(&out); got != 7 {
		t.Fatalf("result = %d, want 7", got)
	}
}

func TestFulfillMissingRequiredArgFails(t *testing.T) {
	pl := NewParamlist(Param{Name: series.Intern("x"), Class: ParamNormal})
	act := New(pl, series.Intern("needs-x"), func(f *Frame) (cellcore.Cell, error) {
		var out cellcore.Cell
		cellcore.InitBlank(&out)
		return out, nil
	})
	feed := intFeed()
	if _, err := Call(act, feed, noEval); err == nil {
		t.Fatalf("expected an error for a missing required argument")
	}
}

func TestFulfillEndableMissingArgIsBlank(t *testing.T) {
	pl := NewParamlist(Param{Name: series.Intern("y"), Class: ParamNormal, Flags: ParamEndable})
	act := New(pl, series.Intern("optional-y"), func(f *Frame) (cellcore.Cell, error) {
		var out cellcore.Cell
		cellcore.CopyCell(&out, f.Ctx.At(1))
		return out, nil
	})
	feed := intFeed()
	out, err := Call(act, feed, noEval)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out.Heart() != cellcore.HeartBlank {
		t.Fatalf("missing endable arg = %v, want blank", out.Heart())
	}
}

func TestTypecheckRejectsWrongType(t *testing.T) {
	pl := NewParamlist(Param{Name: series.Intern("n"), Class: ParamNormal, Filter: HeartSet{cellcore.HeartLogic}})
	act := New(pl, series.Intern("wants-logic"), func(f *Frame) (cellcore.Cell, error) {
		var out cellcore.Cell
		cellcore.InitBlank(&out)
		return out, nil
	})
	feed := intFeed(5)
	if _, err := Call(act, feed, noEval); err == nil {
		t.Fatalf("expected a type-filter rejection for an integer where logic was required")
	}
}
