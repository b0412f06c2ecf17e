package context

import (
	"testing"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

func TestAllocContextArchetype(t *testing.T) {
	ctx := AllocContext(4)
	if ctx.Archetype().Heart() != cellcore.HeartObject {
		t.Fatalf("archetype heart = %v, want object", ctx.Archetype().Heart())
	}
	if ctx.Len() != 0 {
		t.Fatalf("fresh context Len() = %d, want 0", ctx.Len())
	}
}

func TestBindAndFindSymbol(t *testing.T) {
	ctx := AllocContext(2)
	foo := series.Intern("foo")
	var val cellcore.Cell
	cellcore.InitInteger(&val, 42)
	idx := ctx.Bind(foo, val)
	if idx != 1 {
		t.Fatalf("Bind index = %d, want 1", idx)
	}
	if got := cellcore.AsInteger(ctx.At(idx)); got != 42 {
		t.Fatalf("At(idx) = %d, want 42", got)
	}
	if found := ctx.FindSymbol(foo, true); found != idx {
		t.Fatalf("FindSymbol = %d, want %d", found, idx)
	}
	missing := series.Intern("bar-context-test")
	if found := ctx.FindSymbol(missing, true); found != 0 {
		t.Fatalf("FindSymbol for missing key = %d, want 0", found)
	}
}

func TestKeylistShareForcesCopyOnBind(t *testing.T) {
	ctx := AllocContext(2)
	a := series.Intern("a-keylist-test")
	var v cellcore.Cell
	cellcore.InitBlank(&v)
	ctx.Bind(a, v)

	shared := ctx.Keys().Share()
	b := series.Intern("b-keylist-test")
	ctx.Bind(b, v)

	if shared.Len() != 1 {
		t.Fatalf("shared keylist snapshot Len() = %d, want 1 (unaffected by later Bind)", shared.Len())
	}
	if ctx.Keys().Len() != 2 {
		t.Fatalf("ctx keylist Len() = %d, want 2", ctx.Keys().Len())
	}
}

func TestModuleDefineAndLookup(t *testing.T) {
	m := NewModule()
	sym := series.Intern("module-test-symbol")
	patch := m.Define(sym)
	cellcore.InitInteger(&patch.Value, 7)

	got, ok := m.Lookup(sym)
	if !ok {
		t.Fatalf("Lookup did not find defined symbol")
	}
	if cellcore.AsInteger(&got.Value) != 7 {
		t.Fatalf("patch value = %d, want 7", cellcore.AsInteger(&got.Value))
	}

	mods := ModulesDefining(sym)
	found := false
	for _, mod := range mods {
		if mod == m {
			found = true
		}
	}
	if !found {
		t.Fatalf("ModulesDefining did not include the defining module")
	}
}

func TestBindToLevelSwapsKeysource(t *testing.T) {
	ctx := AllocContext(1)
	sym := series.Intern("bind-to-level-test")
	var v cellcore.Cell
	cellcore.InitBlank(&v)
	ctx.Bind(sym, v)

	fakeLevel := &fakeNode{}
	prior := BindToLevel(ctx, fakeLevel)
	if ctx.Keys() != nil {
		t.Fatalf("Keys() should be nil while keysource points at a Level")
	}
	RestoreKeylist(ctx, prior)
	if ctx.Keys() == nil || ctx.Keys().Len() != 1 {
		t.Fatalf("keylist not restored correctly")
	}
}

type fakeNode struct{}

func (f *fakeNode) GCMark() {}
