package sequence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

func wordElem(text string) cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitWordUnbound(&c, cellcore.HeartWord, series.Intern(text))
	return c
}

func blankElem() cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitBlank(&c)
	return c
}

func intElem(n int64) cellcore.Cell {
	var c cellcore.Cell
	cellcore.InitInteger(&c, n)
	return c
}

func TestEncodeByteBacked(t *testing.T) {
	elems := []cellcore.Cell{intElem(1), intElem(2), intElem(3)}
	c, err := Encode(KindTuple, elems)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Flags()&cellcore.FlagFirstIsNode != 0 {
		t.Fatalf("expected byte-packed representation to carry no node payload")
	}
	if got := Len(&c); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	for i, want := range []int64{1, 2, 3} {
		e := At(&c, i)
		if got := cellcore.AsInteger(&e); got != want {
			t.Fatalf("At(%d) = %d, want %d", i, got, want)
		}
	}
	if CellKind(&c) != KindTuple {
		t.Fatalf("CellKind() = %v, want tuple", CellKind(&c))
	}
}

func TestEncodeSymbolEncoded(t *testing.T) {
	elems := []cellcore.Cell{blankElem(), wordElem("foo")}
	c, err := Encode(KindPath, elems)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c.Flags()&cellcore.FlagRefinementLike == 0 {
		t.Fatalf("expected FlagRefinementLike on a blank+word pair")
	}
	if Len(&c) != 2 {
		t.Fatalf("Len() = %d, want 2", Len(&c))
	}
	first := At(&c, 0)
	if first.Heart() != cellcore.HeartBlank {
		t.Fatalf("At(0).Heart() = %v, want blank", first.Heart())
	}
	second := At(&c, 1)
	if second.Heart() != cellcore.HeartWord {
		t.Fatalf("At(1).Heart() = %v, want word", second.Heart())
	}
}

func TestEncodePaired(t *testing.T) {
	elems := []cellcore.Cell{wordElem("a"), wordElem("b")}
	c, err := Encode(KindPath, elems)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if Len(&c) != 2 {
		t.Fatalf("Len() = %d, want 2", Len(&c))
	}
	if got := At(&c, 0); got.Heart() != cellcore.HeartWord {
		t.Fatalf("At(0).Heart() = %v, want word", got.Heart())
	}
}

func TestEncodeArrayFallback(t *testing.T) {
	elems := []cellcore.Cell{wordElem("a"), wordElem("b"), wordElem("c")}
	c, err := Encode(KindPath, elems)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if Len(&c) != 3 {
		t.Fatalf("Len() = %d, want 3", Len(&c))
	}
	for i := 0; i < 3; i++ {
		if At(&c, i).Heart() != cellcore.HeartWord {
			t.Fatalf("At(%d) not a word", i)
		}
	}
}

// TestEncodeDecodeRoundTrip walks three of the four encodings
// (byte-packed, symbol-encoded, array fallback; the paired form is
// covered by TestEncodePaired) and confirms decoding each back out
// reproduces the heart of every element, regardless of which
// representation Encode chose.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		elems []cellcore.Cell
	}{
		{"byte-packed", KindTuple, []cellcore.Cell{intElem(4), intElem(5), intElem(6)}},
		{"symbol-encoded", KindPath, []cellcore.Cell{blankElem(), wordElem("bar")}},
		{"array-fallback", KindPath, []cellcore.Cell{wordElem("x"), wordElem("y"), wordElem("z")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Encode(tc.kind, tc.elems)
			require.NoError(t, err)
			require.Equal(t, len(tc.elems), Len(&c))

			want := make([]cellcore.Heart, len(tc.elems))
			for i, e := range tc.elems {
				want[i] = e.Heart()
			}
			got := make([]cellcore.Heart, Len(&c))
			for i := range got {
				e := At(&c, i)
				got[i] = e.Heart()
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round-tripped element hearts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateRejectsTooFewElements(t *testing.T) {
	if err := Validate(KindPath, []cellcore.Cell{wordElem("a")}); err == nil {
		t.Fatalf("expected error for a single-element sequence")
	}
}

func TestValidateRejectsPathInsideTuple(t *testing.T) {
	pathElems := []cellcore.Cell{wordElem("a"), wordElem("b")}
	pathCell, err := Encode(KindPath, pathElems)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := Validate(KindTuple, []cellcore.Cell{pathCell, wordElem("c")}); err == nil {
		t.Fatalf("expected a nested path to be rejected inside a tuple")
	}
}
