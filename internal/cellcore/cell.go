// Package cellcore implements the uniform-size tagged cell: the single
// value representation shared by every heart in the language, the payload
// discipline the GC walks to find edges, and the handful of primitive
// operations (erase, poison, init, copy, move) that every other component
// builds on. It deliberately knows nothing about series, contexts, or
// evaluation — those live in sibling packages that import this one.
package cellcore

// Node is anything a cell's Extra or Payload slot can point at when the
// corresponding "is node" flag is set: a heap Stub, a Pairing, or any
// other GC-managed handle. It carries no cellcore-specific methods so
// that stub.Stub (and friends) can satisfy it without importing this
// package — breaking what would otherwise be an import cycle between the
// cell substrate and the heap-node substrate it references.
type Node interface {
	// GCMark marks this node (and, transitively, everything it holds)
	// reachable. Idempotent: implementations must no-op if already
	// marked this cycle.
	GCMark()
}

// QuoteByte is the lattice position described in spec.md §3.2: 0 is
// antiform, 1 is plain, 2 is quasi, and odd values 3,5,7,... are quoted
// depth 1,2,3... MaxQuoteDepth bounds how high it may climb.
type QuoteByte uint8

const (
	QuoteAntiform QuoteByte = 0
	QuotePlain    QuoteByte = 1
	QuoteQuasi    QuoteByte = 2
)

// MaxQuoteDepth is the highest quotify depth a cell may reach (spec.md
// §3.2: "Depth is bounded (≤ 126)").
const MaxQuoteDepth = 126

// slot is one of a cell's two payload words. Exactly one of Node/Bits is
// meaningful at a time, selected by the owning cell's FlagFirstIsNode /
// FlagSecondIsNode bit — mirroring the C union this replaces, but typed.
type slot struct {
	node Node
	bits uint64
}

// extra is the cell's single extra word: a binding Node for bindable
// hearts, or inline bits (integer high words, date parts) otherwise.
// Which interpretation applies is determined by cellcore.Bindable(heart),
// not by a flag — the source stores this distinction implicitly via the
// heart's own class, and we keep that rather than spend another flag bit.
type extra struct {
	binding Node
	bits    uint64
}

// Cell is the four-slot tagged value at the center of the language:
// header (flags + heart + quote), extra, and two payload slots. All
// cells are this same size; there is no "small" or "big" variant.
type Cell struct {
	flags Flags
	heart Heart
	quote QuoteByte
	ex    extra
	pay   [2]slot
}

// Erase sets c to the all-zero header. Legal only when the prior content
// need not be preserved — fresh stack cells, an array's tail after a
// shrink. An erased cell is unreadable until the next init_X.
func Erase(c *Cell) {
	*c = Cell{}
}

// Poison sets c to the NODE+CELL+PROTECTED-only mask: neither readable
// nor writable through ordinary APIs. Used for array tail sentinels and
// to mark length-0 for single-slot arrays.
func Poison(c *Cell) {
	*c = Cell{flags: FlagNode | FlagCell | FlagProtected}
}

// freshen clears every flag bit except the persistent ones (MANAGED,
// ROOT) and re-asserts NODE+CELL, leaving c ready for an init_X to fill
// in heart/quote/extra/payload. Every initializer starts here.
func freshen(c *Cell) {
	c.flags = (c.flags & persistentMask) | FlagNode | FlagCell
	c.heart = 0
	c.quote = 0
	c.ex = extra{}
	c.pay = [2]slot{}
}

// Heart returns c's underlying type, ignoring quote state. Panics (a bug,
// not a user-facing error) if c is not readable.
func (c *Cell) Heart() Heart {
	mustReadable(c)
	return c.heart
}

// Quote returns c's lattice position (spec.md §3.2).
func (c *Cell) Quote() QuoteByte {
	mustReadable(c)
	return c.quote
}

// SetQuote overwrites the quote byte in place without touching payload or
// extra. Used exclusively by the quote package's quotify/unquotify; any
// other caller almost certainly wants a full re-init instead.
func (c *Cell) SetQuote(q QuoteByte) {
	mustWritable(c)
	c.quote = q
}

// Flags exposes the raw header bits for packages (series, GC) that need
// to test or set MANAGED/MARKED/ROOT/PROTECTED directly. Kept as a method
// rather than a public field so reads always go through IsReadable-style
// accounting in debug builds if that's ever added.
func (c *Cell) Flags() Flags { return c.flags }

// SetFlags ORs extra bits into the header (used to mark MANAGED, ROOT,
// or PROTECTED after the fact). It never clears NODE/CELL.
func (c *Cell) SetFlags(f Flags) { c.flags |= f }

// ClearFlags ANDs bits out of the header, refusing to drop NODE/CELL
// (those only go away via Erase/Poison).
func (c *Cell) ClearFlags(f Flags) {
	c.flags &^= f &^ (FlagNode | FlagCell)
}

func mustReadable(c *Cell) {
	if !c.IsReadable() {
		panic("cellcore: read of an unreadable cell (erased or poisoned)")
	}
}

func mustWritable(c *Cell) {
	if !c.IsWritable() {
		panic("cellcore: write to an unwritable cell (unreadable or protected)")
	}
}

// ---------------------------------------------------------------------
// Initializers
// ---------------------------------------------------------------------
//
// Every init_X is preconditioned on freshen(dst): persistent flags
// survive, everything else starts from zero. Hearts with an inline
// payload (integer, logic, blank) set pay[0].bits directly; hearts that
// reference a heap node (block, group, path/tuple in array form, word
// bound to a context) set pay[0].node and the corresponding IS_NODE flag.

// InitInteger writes a plain integer cell holding n.
func InitInteger(dst *Cell, n int64) {
	freshen(dst)
	dst.heart = HeartInteger
	dst.quote = QuotePlain
	dst.pay[0].bits = uint64(n)
}

// AsInteger reads back an integer cell's value.
func AsInteger(c *Cell) int64 {
	mustReadable(c)
	return int64(c.pay[0].bits)
}

// InitDecimal writes a plain decimal (float64) cell.
func InitDecimal(dst *Cell, f float64) {
	freshen(dst)
	dst.heart = HeartDecimal
	dst.quote = QuotePlain
	dst.pay[0].bits = floatBits(f)
}

// AsDecimal reads back a decimal cell's value.
func AsDecimal(c *Cell) float64 {
	mustReadable(c)
	return bitsFloat(c.pay[0].bits)
}

// InitLogic writes a plain true/false cell.
func InitLogic(dst *Cell, b bool) {
	freshen(dst)
	dst.heart = HeartLogic
	dst.quote = QuotePlain
	if b {
		dst.pay[0].bits = 1
	}
}

// AsLogic reads back a logic cell's value.
func AsLogic(c *Cell) bool {
	mustReadable(c)
	return c.pay[0].bits != 0
}

// InitBlank writes the blank cell (the sole value of the blank heart;
// carries no payload).
func InitBlank(dst *Cell) {
	freshen(dst)
	dst.heart = HeartBlank
	dst.quote = QuotePlain
}

// InitComma writes the plain comma (evaluation barrier) cell.
func InitComma(dst *Cell) {
	freshen(dst)
	dst.heart = HeartComma
	dst.quote = QuotePlain
}

// InitWordUnbound writes a plain word cell referencing interned symbol
// node sym, with no binding (extra.binding == nil means unbound).
func InitWordUnbound(dst *Cell, heart Heart, sym Node) {
	freshen(dst)
	dst.heart = heart
	dst.quote = QuotePlain
	dst.flags |= FlagFirstIsNode
	dst.pay[0].node = sym
}

// BoundNode returns the symbol/array/etc. node in payload slot 0,
// regardless of heart, as long as FIRST_IS_NODE is set.
func (c *Cell) BoundNode() Node {
	mustReadable(c)
	if c.flags&FlagFirstIsNode == 0 {
		return nil
	}
	return c.pay[0].node
}

// SetBinding stores the Specifier (or nil to unbind) in a bindable cell's
// extra slot. Panics if heart is not bindable — a caller bug, not a user
// error, since bindability is a static property of the heart.
func SetBinding(c *Cell, binding Node) {
	mustWritable(c)
	if !Bindable(c.heart) {
		panic("cellcore: SetBinding on a non-bindable heart")
	}
	c.ex.binding = binding
}

// Binding reads a bindable cell's Specifier, or nil if unbound.
func Binding(c *Cell) Node {
	mustReadable(c)
	if !Bindable(c.heart) {
		return nil
	}
	return c.ex.binding
}

// SetExtraBits and ExtraBits give the sequence package a place to pack a
// byte-packed sequence's element count (spec.md §3.7 encoding 1) without
// disturbing the Binding accessors above: extra's bits field and binding
// field are independent struct members, so a path/tuple cell using the
// compact inline representation (which has no words to bind) can use
// bits for its count while leaving binding untouched at its zero value.
func SetExtraBits(c *Cell, bits uint64) {
	mustWritable(c)
	c.ex.bits = bits
}

func ExtraBits(c *Cell) uint64 {
	mustReadable(c)
	return c.ex.bits
}

// InitPackedSequence writes a byte-packed path/tuple cell (spec.md §3.7
// encoding 1): up to 16 elements in 0..255 packed across both payload
// slots' bits, with ExtraBits recording how many are actually present.
// Neither payload slot is a node, so this representation carries no GC
// edges at all.
func InitPackedSequence(dst *Cell, heart Heart, lo, hi uint64, count int) {
	freshen(dst)
	dst.heart = heart
	dst.quote = QuotePlain
	dst.pay[0].bits = lo
	dst.pay[1].bits = hi
	dst.ex.bits = uint64(count)
}

// InitArrayLike writes a plain block/group/path/tuple cell whose content
// lives in heap node arr (an *stub.Stub of flavor ARRAY, or whatever
// compact sequence representation the sequence package chooses — this
// function only handles the array-backed case).
func InitArrayLike(dst *Cell, heart Heart, arr Node) {
	freshen(dst)
	dst.heart = heart
	dst.quote = QuotePlain
	dst.flags |= FlagFirstIsNode
	dst.pay[0].node = arr
}

// InitTextLike writes a plain text/tag cell backed by a string-series node.
func InitTextLike(dst *Cell, heart Heart, strNode Node) {
	freshen(dst)
	dst.heart = heart
	dst.quote = QuotePlain
	dst.flags |= FlagFirstIsNode
	dst.pay[0].node = strNode
}

// InitObject writes a plain object cell (a Context archetype) referencing
// varlist node vl.
func InitObject(dst *Cell, vl Node) {
	freshen(dst)
	dst.heart = HeartObject
	dst.quote = QuotePlain
	dst.flags |= FlagFirstIsNode
	dst.pay[0].node = vl
}

// InitAction writes a plain action cell referencing details node d.
func InitAction(dst *Cell, d Node) {
	freshen(dst)
	dst.heart = HeartAction
	dst.quote = QuotePlain
	dst.flags |= FlagFirstIsNode
	dst.pay[0].node = d
}

// PayloadNode returns payload slot i (0 or 1) as a Node, or nil if that
// slot doesn't currently hold one.
func (c *Cell) PayloadNode(i int) Node {
	mustReadable(c)
	if i == 0 && c.flags&FlagFirstIsNode != 0 {
		return c.pay[0].node
	}
	if i == 1 && c.flags&FlagSecondIsNode != 0 {
		return c.pay[1].node
	}
	return nil
}

// PayloadBits returns payload slot i's raw bits (meaningful only when the
// corresponding IS_NODE flag is clear).
func (c *Cell) PayloadBits(i int) uint64 {
	mustReadable(c)
	return c.pay[i].bits
}

// SetSecondNode stores a second payload node (used by paired sequence
// representations, map-like structures, and anything else needing a
// second GC edge) and sets FlagSecondIsNode.
func SetSecondNode(c *Cell, n Node) {
	mustWritable(c)
	c.flags |= FlagSecondIsNode
	c.pay[1].node = n
}

// SetSecondBits stores raw bits in payload slot 1 and clears its IS_NODE
// flag.
func SetSecondBits(c *Cell, bits uint64) {
	mustWritable(c)
	c.flags &^= FlagSecondIsNode
	c.pay[1].bits = bits
}

// ---------------------------------------------------------------------
// Copy / move
// ---------------------------------------------------------------------

// CopyMask selects which header bits survive a CopyCell; PROTECTED and
// the persistent bits are excluded by default so a copy never silently
// inherits the source's lock or managed-ness.
type CopyMask Flags

// DefaultCopyMask excludes PROTECTED, MANAGED, ROOT, and MARKED from the
// copied header — the destination's own persistent bits (already present
// from an earlier freshen) are left alone.
const DefaultCopyMask CopyMask = CopyMask(FlagProtected | FlagManaged | FlagRoot | FlagMarked)

// CopyCell copies src's content into dst, honoring DefaultCopyMask: any
// flag bit listed in it is taken from dst's current value rather than
// src's. Copying an unstable antiform into an Element/Value-tier
// destination is the caller's responsibility to reject before calling
// CopyCell; this function only moves bits. IsStable and IsElementSafe
// below are the checks for that (series.Append applies IsElementSafe).
func CopyCell(dst, src *Cell) {
	mustReadable(src)
	keep := dst.flags & Flags(DefaultCopyMask)
	*dst = *src
	dst.flags = (dst.flags &^ Flags(DefaultCopyMask)) | keep
}

// MoveCell copies src into dst (as CopyCell) then erases src so the GC
// releases any reference it held.
func MoveCell(dst, src *Cell) {
	CopyCell(dst, src)
	Erase(src)
}

// IsStable reports whether c is safe to store in a Value-tier slot: not
// an antiform at all, or a stable antiform (stable = not in
// UnstableAntiform's table).
func IsStable(c *Cell) bool {
	mustReadable(c)
	if c.quote != QuoteAntiform {
		return true
	}
	return !UnstableAntiform(c.heart)
}

// IsElementSafe reports whether c may live inside an array: no antiform
// at all (spec.md testable property 5).
func IsElementSafe(c *Cell) bool {
	mustReadable(c)
	return c.quote != QuoteAntiform
}

// WalkNodes invokes fn once for every GC edge c carries: its binding (if
// bindable and bound) and each payload slot flagged as a node. The GC
// package uses this as its sole point of contact with Cell internals, so
// stub/series/context/action/level never need to know the payload
// union's shape.
func WalkNodes(c *Cell, fn func(Node)) {
	if !c.IsReadable() {
		return
	}
	if Bindable(c.heart) && c.ex.binding != nil {
		fn(c.ex.binding)
	}
	if c.flags&FlagFirstIsNode != 0 && c.pay[0].node != nil {
		fn(c.pay[0].node)
	}
	if c.flags&FlagSecondIsNode != 0 && c.pay[1].node != nil {
		fn(c.pay[1].node)
	}
}
