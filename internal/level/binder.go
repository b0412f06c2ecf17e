package level

import (
	"github.com/wyrdlang/wyrd/internal/action"
	"github.com/wyrdlang/wyrd/internal/cellcore"
)

// Binder resolves a word cell in statement or argument position to the
// Action it names, if any. Binding/environment resolution — walking a
// word's bound context, a module's hitch chain, a Level's live frame —
// is deliberately kept out of this package: spec.md's own architecture
// treats lexical/module binding as the concern of internal/context and
// internal/series' symbol machinery, with the evaluator only consuming
// the result. A host wires its resolution strategy in once via
// SetBinder; internal/level never reaches into context/module lookup
// itself.
type Binder interface {
	ResolveAction(word *cellcore.Cell) (*action.Action, bool)
}

var activeBinder Binder

// SetBinder installs the word->action resolver the evaluator and branch
// continuation use for bound words in call position.
func SetBinder(b Binder) { activeBinder = b }

func lookupBoundAction(word *cellcore.Cell) (*action.Action, bool) {
	if activeBinder == nil {
		return nil, false
	}
	return activeBinder.ResolveAction(word)
}
