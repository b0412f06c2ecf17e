package action

import "github.com/wyrdlang/wyrd/internal/series"

// Param is one parameter descriptor (spec.md §3.6): a class, flags, and
// an optional type filter (nil skips typechecking for that parameter).
type Param struct {
	Name   *series.Symbol
	Class  ParamClass
	Flags  ParamFlags
	Filter TypeFilter
}

// Paramlist is a function's parameter description (spec.md §3.6): the
// ordinary input parameters plus a dedicated return-value descriptor.
type Paramlist struct {
	Params []Param
	Return Param
}

// NewParamlist builds a Paramlist from params, defaulting Return to an
// any-value return filter if none of params is class ParamReturn.
func NewParamlist(params ...Param) *Paramlist {
	pl := &Paramlist{Return: Param{Class: ParamReturn, Filter: AnyValue{}}}
	for _, p := range params {
		if p.Class == ParamReturn {
			pl.Return = p
			continue
		}
		pl.Params = append(pl.Params, p)
	}
	return pl
}

// IndexOf returns the 0-based index of the parameter named sym, or -1.
func (pl *Paramlist) IndexOf(sym *series.Symbol) int {
	for i := range pl.Params {
		if pl.Params[i].Name == sym {
			return i
		}
	}
	return -1
}
