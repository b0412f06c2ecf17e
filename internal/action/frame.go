package action

import (
	"fmt"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/context"
	"github.com/wyrdlang/wyrd/internal/quote"
	"github.com/wyrdlang/wyrd/internal/wyrderr"
)

// Frame is the running activation of an Action: a Varlist keyed by its
// Paramlist (spec.md §4.8 "Allocate (or reuse) a Varlist sized by the
// paramlist").
type Frame struct {
	Action *Action
	Ctx    *context.Context
	Out    cellcore.Cell
}

// MakeFrame allocates a, leaving every parameter slot blank (the
// "unfulfilled" marker Fulfill overwrites).
func MakeFrame(a *Action) *Frame {
	ctx := context.AllocContext(len(a.Paramlist.Params))
	for _, p := range a.Paramlist.Params {
		var blank cellcore.Cell
		cellcore.InitBlank(&blank)
		ctx.Bind(p.Name, blank)
	}
	return &Frame{Action: a, Ctx: ctx}
}

// Evaluator evaluates one expression starting at feed's current cursor
// position, advancing it past whatever it consumed, and is used for the
// Normal and Meta parameter classes (spec.md §4.8). Supplied by the
// caller (internal/level's evaluator executor) so this package never
// needs to know how expression evaluation itself works — only how
// argument classes decide whether to invoke it.
type Evaluator func(feed *Feed) (cellcore.Cell, error)

// Fulfill implements spec.md §4.8 step "Fulfilling arguments": for each
// parameter, consume from feed according to its class.
func Fulfill(f *Frame, feed *Feed, eval Evaluator) error {
	for i := range f.Action.Paramlist.Params {
		p := f.Action.Paramlist.Params[i]
		slot := f.Ctx.At(i + 1)

		if p.Class == ParamRefinement {
			if err := fulfillRefinement(f, p, slot, feed, eval); err != nil {
				return err
			}
			continue
		}

		if p.Flags&ParamVariadic != 0 {
			// A variadic source is assembled by the evaluator from feed
			// directly, since only it knows the enclosing expression
			// boundary; this slot is left blank as a variadic-bound
			// placeholder for the dispatcher to recognize by flag.
			cellcore.InitBlank(slot)
			continue
		}

		if feed.AtEnd() {
			if p.Flags&ParamEndable != 0 {
				cellcore.InitBlank(slot)
				continue
			}
			return wyrderr.NewFail(fmt.Sprintf("action: missing required argument %q", symbolText(p)))
		}

		switch p.Class {
		case ParamHardQuoted:
			cellcore.CopyCell(slot, feed.Next())
		case ParamSoftQuoted:
			next := feed.Peek()
			if isEvaluativeSoftQuoteForm(next) {
				v, err := eval(feed)
				if err != nil {
					return err
				}
				cellcore.CopyCell(slot, &v)
			} else {
				cellcore.CopyCell(slot, feed.Next())
			}
		case ParamMeta:
			v, err := eval(feed)
			if err != nil {
				return err
			}
			cellcore.CopyCell(slot, &v)
			quote.MetaQuotify(slot)
		default: // ParamNormal
			v, err := eval(feed)
			if err != nil {
				return err
			}
			cellcore.CopyCell(slot, &v)
		}
	}
	return nil
}

func fulfillRefinement(f *Frame, p Param, slot *cellcore.Cell, feed *Feed, eval Evaluator) error {
	if feed.AtEnd() {
		cellcore.InitLogic(slot, false)
		return nil
	}
	next := feed.Peek()
	if next.Heart() != cellcore.HeartPath {
		cellcore.InitLogic(slot, false)
		return nil
	}
	feed.Next()
	cellcore.InitLogic(slot, true)
	return nil
}

// isEvaluativeSoftQuoteForm reports whether a soft-quoted parameter
// should evaluate its next feed element rather than take it literally:
// true for get-word and group hearts (spec.md §4.8: "soft-quote takes
// literal next element unless a get-group/get-word").
func isEvaluativeSoftQuoteForm(c *cellcore.Cell) bool {
	switch c.Heart() {
	case cellcore.HeartGetWord, cellcore.HeartGroup:
		return true
	default:
		return false
	}
}

func symbolText(p Param) string {
	if p.Name == nil {
		return "<unnamed>"
	}
	return p.Name.Text()
}

// Typecheck implements spec.md §4.8 step "Typechecking": each argument
// against its filter, honoring endable/skippable (a blank slot is
// always accepted regardless of filter when the parameter was endable).
func Typecheck(f *Frame) error {
	for i := range f.Action.Paramlist.Params {
		p := f.Action.Paramlist.Params[i]
		slot := f.Ctx.At(i + 1)
		if p.Filter == nil {
			continue
		}
		if slot.Heart() == cellcore.HeartBlank && p.Flags&(ParamEndable|ParamSkippable) != 0 {
			continue
		}
		if !p.Filter.Accepts(slot) {
			return wyrderr.NewFail(fmt.Sprintf("action: argument %q does not match type filter %s", symbolText(p), p.Filter))
		}
	}
	return nil
}

// Call runs the full dispatch sequence (spec.md §4.8 steps 2-4):
// fulfill, typecheck, dispatch, return-typecheck.
func Call(a *Action, feed *Feed, eval Evaluator) (cellcore.Cell, error) {
	f := MakeFrame(a)
	if err := Fulfill(f, feed, eval); err != nil {
		return cellcore.Cell{}, err
	}
	if err := Typecheck(f); err != nil {
		return cellcore.Cell{}, err
	}
	out, err := a.Dispatch(f)
	if err != nil {
		return cellcore.Cell{}, err
	}
	if a.Paramlist.Return.Filter != nil && !a.Paramlist.Return.Filter.Accepts(&out) {
		return cellcore.Cell{}, wyrderr.NewFail(fmt.Sprintf("action %q: return value does not match return filter %s", symbolText(Param{Name: a.Label}), a.Paramlist.Return.Filter))
	}
	return out, nil
}
