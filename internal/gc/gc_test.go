package gc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/level"
	"github.com/wyrdlang/wyrd/internal/pool"
	"github.com/wyrdlang/wyrd/internal/series"
)

func intCell(n int64) cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitInteger(&c, n)
	return c
}

func TestCollectSweepsUnreachableArray(t *testing.T) {
	alloc := pool.New(0)

	garbage := series.NewArray(2)
	_ = series.Append(garbage, intCell(1), intCell(2))

	stats := Collect(alloc, nil)

	if stats.Freed == 0 {
		t.Fatalf("expected at least one stub freed, got %+v", stats)
	}
	if garbage.S.IsMarked() {
		t.Fatalf("unreachable array still marked after sweep")
	}
	if len(garbage.S.Cells()) != 0 {
		t.Fatalf("unreachable array's storage was not released")
	}
}

func TestCollectKeepsLevelRootedArray(t *testing.T) {
	alloc := pool.New(0)

	kept := series.NewArray(1)
	_ = series.Append(kept, intCell(99))
	var block cellcore.Cell
	cellcore.InitArrayLike(&block, cellcore.HeartBlock, kept.S)

	top := level.NewLevel(level.Baseline{}, nil)
	cellcore.CopyCell(&top.Out, &block)

	Collect(alloc, top)

	if !kept.S.IsMarked() {
		t.Fatalf("array referenced from a live level's Out was swept")
	}
	if got := cellcore.AsInteger(kept.At(0)); got != 99 {
		t.Fatalf("kept array content corrupted, got %d", got)
	}
}

func TestCollectKeepsManualRootedArray(t *testing.T) {
	alloc := pool.New(0)

	referenced := series.NewArray(1)
	_ = series.Append(referenced, intCell(7))

	holder := series.NewArray(1)
	var inner cellcore.Cell
	cellcore.InitArrayLike(&inner, cellcore.HeartBlock, referenced.S)
	_ = series.Append(holder, inner)
	alloc.TrackManual(holder.S)

	Collect(alloc, nil)

	if !referenced.S.IsMarked() {
		t.Fatalf("array reachable only through a tracked manual was swept")
	}
}

// TestCollectSoakDrainsGarbageAcrossCycles mirrors the kind of soak check
// the teacher's own longer VM runs lean on: allocate a batch of
// unreachable arrays, sweep, then sweep again over an already-clean
// heap and confirm the second cycle is a true no-op.
func TestCollectSoakDrainsGarbageAcrossCycles(t *testing.T) {
	alloc := pool.New(0)
	for i := 0; i < 25; i++ {
		garbage := series.NewArray(2)
		_ = series.Append(garbage, intCell(int64(i)), intCell(int64(i+1)))
	}

	// Interned symbols are registered stubs and a permanent root, so they
	// are the only survivors of a cycle with no other roots.
	symbols := len(series.AllSymbols())

	first := Collect(alloc, nil)
	require.Equal(t, first.Tracked-symbols, first.Freed, "a soak pass over 25 garbage arrays should free everything it tracked except the interned symbols")
	require.Equal(t, symbols, first.Marked, "only the interned symbols should have survived with no other roots")

	second := Collect(alloc, nil)
	want := Stats{Tracked: symbols, Marked: symbols, Freed: 0, BytesReclaimed: 0}
	got := Stats{Tracked: second.Tracked, Marked: second.Marked, Freed: second.Freed, BytesReclaimed: second.BytesReclaimed}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("second cycle over an already-swept heap should be a no-op (-want +got):\n%s\nfull stats: %# v", diff, pretty.Formatter(second))
	}
}

func TestCollectResetsDepletion(t *testing.T) {
	alloc := pool.New(10)
	alloc.Tick(10)

	Collect(alloc, nil)

	if shouldRecycle := alloc.Tick(1); shouldRecycle {
		t.Fatalf("depletion counter was not reset after a cycle")
	}
}
