package main

import (
	"github.com/wyrdlang/wyrd/internal/action"
	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/level"
	"github.com/wyrdlang/wyrd/internal/series"
)

// demoBinder is the embedding host's word->action resolver: a fixed
// table, standing in for whatever a real host wires module/context
// lookup to (spec.md §4.7). wyrdtool only ever needs the one builtin it
// registers below.
type demoBinder struct {
	table map[*series.Symbol]*action.Action
}

func (b *demoBinder) ResolveAction(word *cellcore.Cell) (*action.Action, bool) {
	sym, ok := word.BoundNode().(*series.Symbol)
	if !ok {
		return nil, false
	}
	act, ok := b.table[sym]
	return act, ok
}

// newAddAction builds a native two-argument integer-adding action — the
// one builtin wyrdtool needs to demonstrate argument fulfillment,
// typechecking, and dispatch without a real standard library.
func newAddAction() *action.Action {
	intFilter := action.HeartSet{cellcore.HeartInteger}
	pl := action.NewParamlist(
		action.Param{Name: series.Intern("a"), Class: action.ParamNormal, Filter: intFilter},
		action.Param{Name: series.Intern("b"), Class: action.ParamNormal, Filter: intFilter},
	)
	return action.New(pl, series.Intern("add"), func(f *action.Frame) (cellcore.Cell, error) {
		a := cellcore.AsInteger(f.Ctx.At(1))
		b := cellcore.AsInteger(f.Ctx.At(2))
		var out cellcore.Cell
		cellcore.InitInteger(&out, a+b)
		return out, nil
	})
}

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

// buildDemoProgram assembles `add 10 20` as a cell array — the
// construction a real host does via init_word/init_block rather than a
// scanner — and wires the binder that resolves `add` to the builtin
// above.
func buildDemoProgram() *action.Feed {
	addSym := series.Intern("add")
	add := newAddAction()
	level.SetBinder(&demoBinder{table: map[*series.Symbol]*action.Action{addSym: add}})

	arr := series.NewArray(3)
	_ = series.Append(arr, wordCell(addSym), intCell(10), intCell(20))
	return action.NewFeed(arr)
}

// runDemo drives buildDemoProgram's feed through the trampoline and
// returns its result.
func runDemo() (cellcore.Cell, error) {
	top := level.NewLevel(level.Baseline{}, level.EvalExecutor)
	top.Feed = buildDemoProgram()
	return level.Run(top)
}
