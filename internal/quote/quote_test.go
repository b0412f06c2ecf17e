package quote

import (
	"testing"

	"github.com/wyrdlang/wyrd/internal/cellcore"
)

func wordCell() cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitWordUnbound(&c, cellcore.HeartWord, nil)
	return c
}

// TestQuotifyUnquotifyRoundTrip pins down testable property 3
// (quotify then unquotify is identity) across a range of depths,
// including the scenario E1 end-to-end case (depth 3, unquotify 3).
func TestQuotifyUnquotifyRoundTrip(t *testing.T) {
	for depth := 1; depth <= 5; depth++ {
		var c cellcore.Cell
		cellcore.InitInteger(&c, 42)
		Quotify(&c, depth)

		kind, gotDepth := Classify(&c)
		if kind != KindQuoted || gotDepth != depth {
			t.Fatalf("depth %d: Classify = (%v, %d), want (quoted, %d)", depth, kind, gotDepth, depth)
		}

		Unquotify(&c, depth)
		kind, _ = Classify(&c)
		if kind != KindPlain {
			t.Fatalf("depth %d: after round trip, kind = %v, want plain", depth, kind)
		}
		if got := cellcore.AsInteger(&c); got != 42 {
			t.Fatalf("depth %d: round-tripped value = %d, want 42", depth, got)
		}
	}
}

// TestUnquotifyLandingOnPlainDoesNotPanic is the literal regression this
// guards: Quotify(c, 3) on a plain word followed by Unquotify(c, 3) must
// land back on plain without panicking (spec.md §8 scenario E1), and
// Unquotify(c, 1) on a depth-1 quoted value (the branch-continuation
// case, spec.md §4.9) must likewise land on plain.
func TestUnquotifyLandingOnPlainDoesNotPanic(t *testing.T) {
	c := wordCell()
	Quotify(&c, 3)
	Unquotify(&c, 3)
	if kind, _ := Classify(&c); kind != KindPlain {
		t.Fatalf("kind = %v, want plain", kind)
	}

	c2 := wordCell()
	Quotify(&c2, 1)
	Unquotify(&c2, 1)
	if kind, _ := Classify(&c2); kind != KindPlain {
		t.Fatalf("kind = %v, want plain", kind)
	}
}

// TestUnquotifyRejectsCrossingIntoAntiform confirms Unquotify still
// draws the line at quasi/antiform — only landing below plain is
// rejected, not landing on it.
func TestUnquotifyRejectsCrossingIntoAntiform(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic crossing from quasi into antiform via Unquotify")
		}
	}()
	c := wordCell()
	c.SetQuote(cellcore.QuoteQuasi)
	Unquotify(&c, 1)
}

// TestMetaUnquotifyCrossesIntoAntiform confirms the antiform-permitting
// entry point still reaches antiform from quasi, the case Unquotify
// itself must reject.
func TestMetaUnquotifyCrossesIntoAntiform(t *testing.T) {
	c := wordCell()
	c.SetQuote(cellcore.QuoteQuasi)
	MetaUnquotify(&c, 1)
	if kind, _ := Classify(&c); kind != KindAntiform {
		t.Fatalf("kind = %v, want antiform", kind)
	}
}
