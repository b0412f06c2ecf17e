// Package sequence implements the immutable, 2+ element, interstitially
// delimited path/tuple values of spec.md §3.7: encoding selects the most
// compact of four storage representations, and decoding dispatches back
// on whatever the cell's flags and referenced node say it is.
package sequence

import (
	"fmt"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/series"
)

// Kind is which delimiter a sequence uses: path ("/") or tuple (".").
type Kind uint8

const (
	KindPath Kind = iota
	KindTuple
)

// inlineByteCap is the element count a byte-packed sequence can hold
// inline: two uint64 payload slots, one byte per element.
const inlineByteCap = 16

var errTooFewElements = fmt.Errorf("sequence: need at least 2 elements")

// elementAllowed reports whether e's heart is in the per-kind whitelist
// from spec.md §4.6 step 1: words, integers, groups, blocks, text, tag,
// blank; tuples may nest inside paths but not vice versa. Arrow-word
// rejection is the scanner's job and out of scope here.
func elementAllowed(kind Kind, e *cellcore.Cell) bool {
	switch e.Heart() {
	case cellcore.HeartWord, cellcore.HeartInteger, cellcore.HeartGroup,
		cellcore.HeartBlock, cellcore.HeartText, cellcore.HeartTag, cellcore.HeartBlank:
		return true
	case cellcore.HeartTuple:
		return kind == KindPath
	default:
		return false
	}
}

// Validate checks every element against the per-kind whitelist (spec.md
// §4.6 step 1).
func Validate(kind Kind, elems []cellcore.Cell) error {
	if len(elems) < 2 {
		return errTooFewElements
	}
	for i := range elems {
		if !elementAllowed(kind, &elems[i]) {
			return fmt.Errorf("sequence: element %d (heart %s) not allowed in a %s", i, elems[i].Heart(), kindName(kind))
		}
	}
	return nil
}

func kindName(k Kind) string {
	if k == KindTuple {
		return "tuple"
	}
	return "path"
}

func heartFor(k Kind) cellcore.Heart {
	if k == KindTuple {
		return cellcore.HeartTuple
	}
	return cellcore.HeartPath
}

// Encode implements spec.md §4.6's encoder algorithm: validate, then try
// symbol-encoded, then byte-packed, then paired, then fall back to a
// frozen array, always choosing the first representation that fits.
func Encode(kind Kind, elems []cellcore.Cell) (cellcore.Cell, error) {
	var out cellcore.Cell
	if err := Validate(kind, elems); err != nil {
		return out, err
	}

	if sym, ok := trySymbolEncoded(kind, elems); ok {
		return sym, nil
	}
	if packed, ok := tryBytePacked(kind, elems); ok {
		return packed, nil
	}
	if len(elems) == 2 {
		return pairedEncode(kind, elems), nil
	}
	return arrayEncode(kind, elems), nil
}

// trySymbolEncoded implements representation 2: exactly two elements,
// one blank and one word.
func trySymbolEncoded(kind Kind, elems []cellcore.Cell) (cellcore.Cell, bool) {
	var out cellcore.Cell
	if len(elems) != 2 {
		return out, false
	}
	blankFirst := elems[0].Heart() == cellcore.HeartBlank && elems[1].Heart() == cellcore.HeartWord
	blankSecond := elems[1].Heart() == cellcore.HeartBlank && elems[0].Heart() == cellcore.HeartWord
	if !blankFirst && !blankSecond {
		return out, false
	}
	wordCell := elems[0]
	if blankFirst {
		wordCell = elems[1]
	}
	sym, _ := wordCell.BoundNode().(*series.Symbol)
	cellcore.InitWordUnbound(&out, cellcore.HeartWord, sym)
	out.SetFlags(cellcore.FlagRefinementLike)
	if blankFirst {
		out.SetFlags(cellcore.FlagRefinementBlankFirst)
	}
	if kind == KindTuple {
		out.SetFlags(cellcore.FlagSequenceIsTuple)
	}
	return out, true
}

// tryBytePacked implements representation 1: all elements are integers
// 0..255 and the count fits inline.
func tryBytePacked(kind Kind, elems []cellcore.Cell) (cellcore.Cell, bool) {
	var out cellcore.Cell
	if len(elems) > inlineByteCap {
		return out, false
	}
	bytes := make([]byte, len(elems))
	for i := range elems {
		if elems[i].Heart() != cellcore.HeartInteger {
			return out, false
		}
		n := cellcore.AsInteger(&elems[i])
		if n < 0 || n > 255 {
			return out, false
		}
		bytes[i] = byte(n)
	}
	var lo, hi uint64
	for i := 0; i < len(bytes) && i < 8; i++ {
		lo |= uint64(bytes[i]) << (8 * uint(i))
	}
	for i := 8; i < len(bytes); i++ {
		hi |= uint64(bytes[i]) << (8 * uint(i-8))
	}
	cellcore.InitPackedSequence(&out, heartFor(kind), lo, hi, len(bytes))
	return out, true
}

// pairedEncode implements representation 3: a two-cell Pairing node,
// stored as the cell's sole payload node.
func pairedEncode(kind Kind, elems []cellcore.Cell) cellcore.Cell {
	var out cellcore.Cell
	p := series.NewPairing()
	cellcore.CopyCell(p.First(), &elems[0])
	cellcore.CopyCell(p.Second(), &elems[1])
	cellcore.InitArrayLike(&out, heartFor(kind), p)
	return out
}

// arrayEncode implements representation 4: a frozen array of all
// elements.
func arrayEncode(kind Kind, elems []cellcore.Cell) cellcore.Cell {
	var out cellcore.Cell
	arr := series.NewArray(len(elems))
	_ = series.Append(arr, elems...)
	arr.FreezeDeep()
	cellcore.InitArrayLike(&out, heartFor(kind), arr.S)
	return out
}

// CellKind reports whether c is a path or tuple sequence cell, accounting
// for the symbol-encoded representation's re-interpreted word heart
// (spec.md §3.7 encoding 2 stores the logical kind in a flag since the
// cell's own Heart reports HeartWord).
func CellKind(c *cellcore.Cell) Kind {
	if c.Flags()&cellcore.FlagRefinementLike != 0 {
		if c.Flags()&cellcore.FlagSequenceIsTuple != 0 {
			return KindTuple
		}
		return KindPath
	}
	if c.Heart() == cellcore.HeartTuple {
		return KindTuple
	}
	return KindPath
}

// Len returns the element count of an encoded sequence cell, dispatching
// on representation.
func Len(c *cellcore.Cell) int {
	switch {
	case c.Flags()&cellcore.FlagRefinementLike != 0:
		return 2
	case c.Flags()&cellcore.FlagFirstIsNode == 0:
		return int(cellcore.ExtraBits(c))
	default:
		switch node := c.BoundNode().(type) {
		case *series.Pairing:
			return 2
		case interface{ Used() int }:
			return node.Used()
		default:
			return 0
		}
	}
}

// At returns element i of an encoded sequence cell (0 <= i < Len(c)).
// The returned cell is a fresh copy; mutating it does not affect the
// sequence (every representation is immutable once encoded).
func At(c *cellcore.Cell, i int) cellcore.Cell {
	var out cellcore.Cell
	switch {
	case c.Flags()&cellcore.FlagRefinementLike != 0:
		blankFirst := c.Flags()&cellcore.FlagRefinementBlankFirst != 0
		if (i == 0) == blankFirst {
			cellcore.InitBlank(&out)
			return out
		}
		cellcore.InitWordUnbound(&out, cellcore.HeartWord, c.BoundNode())
		return out
	case c.Flags()&cellcore.FlagFirstIsNode == 0:
		lo := c.PayloadBits(0)
		hi := c.PayloadBits(1)
		var b byte
		if i < 8 {
			b = byte(lo >> (8 * uint(i)))
		} else {
			b = byte(hi >> (8 * uint(i-8)))
		}
		cellcore.InitInteger(&out, int64(b))
		return out
	default:
		switch node := c.BoundNode().(type) {
		case *series.Pairing:
			if i == 0 {
				cellcore.CopyCell(&out, node.First())
			} else {
				cellcore.CopyCell(&out, node.Second())
			}
			return out
		case interface{ Cells() []cellcore.Cell }:
			cellcore.CopyCell(&out, &node.Cells()[i])
			return out
		}
	}
	panic("sequence: At on an unrecognized representation")
}
