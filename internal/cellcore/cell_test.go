package cellcore

import "testing"

// TestPoisonedCellIsNeitherReadableNorWritable pins down testable
// property 1 (spec.md §3.1): poison means neither readable nor
// writable. IsReadable must not be fooled by the fact that poison also
// sets NODE+CELL, the same two bits an ordinary initialized cell carries.
func TestPoisonedCellIsNeitherReadableNorWritable(t *testing.T) {
	var c Cell
	InitInteger(&c, 7)
	if !c.IsReadable() {
		t.Fatalf("freshly initialized cell reports unreadable")
	}

	Poison(&c)
	if c.IsReadable() {
		t.Fatalf("poisoned cell reports readable")
	}
	if c.IsWritable() {
		t.Fatalf("poisoned cell reports writable")
	}
	if !c.IsPoisoned() {
		t.Fatalf("IsPoisoned() false on a freshly poisoned cell")
	}
}

// TestReadingPoisonedCellPanics confirms the §4.1 "reading a poisoned
// cell through a readable-required API is a panic" rule actually holds
// for Heart/Quote, not just for IsReadable's own bookkeeping.
func TestReadingPoisonedCellPanics(t *testing.T) {
	var c Cell
	InitInteger(&c, 7)
	Poison(&c)

	defer func() {
		if recover() == nil {
			t.Fatalf("Heart() on a poisoned cell did not panic")
		}
	}()
	c.Heart()
}

// TestErasedCellIsUnreadable confirms the zero-value cell (distinct from
// poison) is likewise unreadable, matching IsErased.
func TestErasedCellIsUnreadable(t *testing.T) {
	var c Cell
	if !c.IsErased() {
		t.Fatalf("zero-value cell reports not erased")
	}
	if c.IsReadable() {
		t.Fatalf("erased cell reports readable")
	}
	if c.IsPoisoned() {
		t.Fatalf("erased cell reports poisoned")
	}
}
