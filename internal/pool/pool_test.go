package pool

import "testing"

type fakeManual struct {
	freed bool
}

func (m *fakeManual) ManualFree() { m.freed = true }

func TestRollbackManualsFreesBackToBaseline(t *testing.T) {
	a := New(0)
	baseline := a.ManualsBaseline()

	kept := &fakeManual{}
	a.TrackManual(kept)
	baseline2 := a.ManualsBaseline()

	doomed := []*fakeManual{{}, {}, {}}
	for _, m := range doomed {
		a.TrackManual(m)
	}

	a.RollbackManuals(baseline2)

	if a.ManualsBaseline() != baseline2 {
		t.Fatalf("manuals vector len = %d, want %d", a.ManualsBaseline(), baseline2)
	}
	if kept.freed {
		t.Fatalf("manual tracked before baseline was freed")
	}
	for i, m := range doomed {
		if !m.freed {
			t.Fatalf("manual %d allocated after baseline was not freed", i)
		}
	}
	_ = baseline
}

func TestRollbackGuardsDropsBackToBaseline(t *testing.T) {
	a := New(0)
	kept := "kept"
	a.PushGuard(&kept)
	baseline := a.GuardsBaseline()

	x, y := "x", "y"
	a.PushGuard(&x)
	a.PushGuard(&y)

	a.RollbackGuards(baseline)

	if a.GuardsBaseline() != baseline {
		t.Fatalf("guard stack depth = %d, want %d", a.GuardsBaseline(), baseline)
	}
	live := a.GuardsLive()
	if len(live) != 1 || live[0] != &kept {
		t.Fatalf("guard stack after rollback = %v, want [%p]", live, &kept)
	}
}

func TestDropGuardRequiresLIFOOrder(t *testing.T) {
	a := New(0)
	x, y := "x", "y"
	a.PushGuard(&x)
	a.PushGuard(&y)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic dropping a guard out of LIFO order")
		}
	}()
	a.DropGuard(&x)
}
