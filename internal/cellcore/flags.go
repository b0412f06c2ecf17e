package cellcore

// Flags is the header flag word of a cell. Four bytes in the source
// (node_tag, heart, quote, extra) are modeled here as distinct fields
// (Heart, Quote) plus this bitset, which is closer to how a Go reader
// expects type+flags to be split than cramming everything into one
// machine word the way the C original does.
type Flags uint32

const (
	// FlagNode and FlagCell must both be set for a cell to be readable.
	// A zero Flags value (no bits at all) is the "erased" state: legal
	// only as a fresh sink, never readable.
	FlagNode Flags = 1 << iota
	FlagCell

	// FlagManaged marks a cell's owning stub (or a standalone pairing) as
	// GC-managed rather than held in the manuals vector.
	FlagManaged
	// FlagMarked is a GC-owned bit: freshen clears it and CopyCell never
	// copies it. The collector in internal/gc marks stubs (their
	// LeaderMarked bit), not cells, and does not set this flag.
	FlagMarked
	// FlagRoot pins a cell as a GC root independent of reachability. It
	// survives freshen; nothing in the core sets it (the guard stack in
	// internal/pool roots its entries without it).
	FlagRoot
	// FlagProtected blocks writes through any mutating API.
	FlagProtected
	// FlagConst marks a cell as user-const (distinct from FlagProtected:
	// const is a language-level opt-in, protected is series-level lock).
	FlagConst
	// FlagNewlineBefore records scanner-supplied formatting; never
	// inspected by evaluation, only by molding.
	FlagNewlineBefore
	// FlagFirstIsNode and FlagSecondIsNode say whether Payload[0] /
	// Payload[1] hold a Node (GC edge) or raw bits.
	FlagFirstIsNode
	FlagSecondIsNode
	// FlagRefinementLike marks the symbol-encoded two-element sequence
	// representation (spec.md §3.7 encoding 2); the companion bits say
	// which side was blank and whether the re-interpreted heart means
	// tuple (./a) rather than the path default (/a).
	FlagRefinementLike
	FlagRefinementBlankFirst
	FlagSequenceIsTuple

	// persistentMask is the set of bits that survive a freshening
	// re-init (spec.md §4.1): everything else is cleared before an
	// init_X writes new content. MARKED is GC-owned and is explicitly
	// excluded even though it "persists" across a cell's lifetime from
	// the GC's point of view — re-initializing a cell always starts
	// unmarked because its content has changed identity.
	persistentMask = FlagManaged | FlagRoot
)

// IsReadable reports whether c currently holds a dereferenceable value:
// NODE and CELL both set, and not merely protected-for-write but actually
// poisoned (poison also sets NODE+CELL, so poisoned cells are distinguished
// by carrying no other content bits and being PROTECTED).
func (c *Cell) IsReadable() bool {
	return c.flags&(FlagNode|FlagCell) == (FlagNode|FlagCell) && !c.IsPoisoned()
}

// IsWritable reports whether c may be the destination of a move/copy/init:
// readable and not protected.
func (c *Cell) IsWritable() bool {
	return c.IsReadable() && c.flags&FlagProtected == 0
}

// IsErased reports the zero state: legal only as an initialization sink.
func (c *Cell) IsErased() bool {
	return c.flags == 0
}

// IsPoisoned reports the NODE+CELL+PROTECTED-only state used for array
// tail sentinels and zero-length single-slot arrays.
func (c *Cell) IsPoisoned() bool {
	return c.flags == (FlagNode | FlagCell | FlagProtected)
}
