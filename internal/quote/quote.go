// Package quote implements the quoting lattice (spec.md §3.2, §4.5): the
// mapping from (heart, quote-byte) to displayed kind, and the total
// functions — quotify, unquotify, meta_quotify, meta_unquotify, decay —
// that move a cell up and down it.
package quote

import "github.com/wyrdlang/wyrd/internal/cellcore"

// Kind is the displayed lattice position of a cell, independent of which
// heart it wraps: antiform, plain, quasi, or quoted-to-some-depth.
type Kind uint8

const (
	KindAntiform Kind = iota
	KindPlain
	KindQuasi
	KindQuoted
)

// Classify returns c's lattice Kind and, for KindQuoted, its depth.
func Classify(c *cellcore.Cell) (kind Kind, depth int) {
	q := c.Quote()
	switch {
	case q == cellcore.QuoteAntiform:
		return KindAntiform, 0
	case q == cellcore.QuotePlain:
		return KindPlain, 0
	case q == cellcore.QuoteQuasi:
		return KindQuasi, 0
	default:
		// Odd bytes 3,5,7,... are quoted depth 1,2,3,...: depth = (q-1)/2.
		return KindQuoted, int(q-1) / 2
	}
}

// Quotify shifts c's quote byte n levels deeper, per spec.md §4.5:
// starting from antiform, the first level lands on quasi (q=2); every
// level after that adds 2 to leave room for the even/odd parity that
// separates quasi from quoted. Panics if the result would exceed
// cellcore.MaxQuoteDepth — an implementation bug (callers must check
// depth against the limit before an unbounded quote loop), not a
// recoverable user error.
func Quotify(c *cellcore.Cell, n int) {
	if n == 0 {
		return
	}
	q := int(c.Quote())
	if q == int(cellcore.QuoteAntiform) {
		q = int(cellcore.QuoteQuasi)
		n--
	}
	q += 2 * n
	if (q-1)/2 > int(cellcore.MaxQuoteDepth) {
		panic("quote: quotify exceeds max depth")
	}
	c.SetQuote(cellcore.QuoteByte(q))
}

// Unquotify shifts c's quote byte n levels shallower. Plain unquotify may
// land on plain but may not cross into quasi or antiform: unquotifying a
// quasi cell (q=2) by one level is an error under this entry point — use
// MetaUnquotify for that.
func Unquotify(c *cellcore.Cell, n int) {
	if n == 0 {
		return
	}
	q := int(c.Quote())
	if q-2*n < int(cellcore.QuotePlain) {
		panic("quote: unquotify would cross into antiform; use MetaUnquotify")
	}
	c.SetQuote(cellcore.QuoteByte(q - 2*n))
}

// MetaUnquotify is the antiform-permitting counterpart of Unquotify: it
// may produce an antiform when crossing down from quasi.
func MetaUnquotify(c *cellcore.Cell, n int) {
	if n == 0 {
		return
	}
	q := int(c.Quote())
	q -= 2 * n
	if q == int(cellcore.QuoteQuasi) {
		// crossing from quasi straight past plain is impossible by
		// construction (quasi is q=2, one unquotify step lands on 0).
	}
	if q < 0 {
		panic("quote: meta-unquotify below antiform")
	}
	if q == int(cellcore.QuoteQuasi)-2 {
		q = int(cellcore.QuoteAntiform)
	}
	c.SetQuote(cellcore.QuoteByte(q))
}

// MetaQuotify applies one meta step: an antiform becomes its same-heart
// quasi; anything else gains one quote level. This is the operation
// behind the `meta` reflector and behind wrapping an argument for a
// `meta`-class parameter (spec.md §4.8).
func MetaQuotify(c *cellcore.Cell) {
	if c.Quote() == cellcore.QuoteAntiform {
		c.SetQuote(cellcore.QuoteQuasi)
		return
	}
	Quotify(c, 1)
}

// MetaUnquotifyOne is the inverse of MetaQuotify: a quasi cell becomes
// its antiform; anything else loses one quote level. Used to reify a
// meta-quoted result back to its abstract form (spec.md E4: `unquasi`).
func MetaUnquotifyOne(c *cellcore.Cell) {
	if c.Quote() == cellcore.QuoteQuasi {
		c.SetQuote(cellcore.QuoteAntiform)
		return
	}
	MetaUnquotify(c, 1)
}

// identityDecayHearts marks the hearts whose stable antiform decays to
// the plain value of the same heart, an identity transition (the
// common case: a null-antiform word decays to a plain null word). Hearts
// not listed here have no context-free reification (e.g. splice/pack are
// always unstable, never reach this table) or decay to a heart-specific
// constant handled by the caller (e.g. a stable antiform error has no
// single reification — decaying an error antiform is always a hard
// error, never silent).
var identityDecayHearts = map[cellcore.Heart]bool{
	cellcore.HeartWord:  true, // null, true, false antiforms decay to the plain word
	cellcore.HeartLogic: true,
}

// Decay collapses a stable antiform to its reified equivalent in place,
// per spec.md §4.5. Unstable antiforms are a hard error to decay — the
// caller (typically a plain-word variable fetch) must have already ruled
// that out via IsDecayable, since decaying a pack or splice silently
// would hide the very distinction the lattice exists to preserve.
func Decay(c *cellcore.Cell) {
	if c.Quote() != cellcore.QuoteAntiform {
		return
	}
	if cellcore.UnstableAntiform(c.Heart()) {
		panic("quote: cannot decay an unstable antiform")
	}
	if !identityDecayHearts[c.Heart()] {
		// Stable antiform with no identity reification (e.g. a splice
		// of a specific, already-stable group): leave as-is, the caller
		// reads the antiform directly.
		return
	}
	c.SetQuote(cellcore.QuotePlain)
}

// IsDecayable reports whether Decay may be safely called on c.
func IsDecayable(c *cellcore.Cell) bool {
	return c.Quote() != cellcore.QuoteAntiform || !cellcore.UnstableAntiform(c.Heart())
}
