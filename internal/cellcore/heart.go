package cellcore

// Heart is the underlying type of a cell, disregarding quote state. It is
// the byte stored in the cell header that every initializer, mold routine,
// and dispatch switch keys off of.
type Heart uint8

const (
	HeartWord Heart = iota
	HeartSetWord
	HeartGetWord
	HeartMetaWord
	HeartBlock
	HeartGroup
	HeartPath
	HeartTuple
	HeartInteger
	HeartDecimal
	HeartText
	HeartTag
	HeartBlank
	HeartLogic
	HeartError
	HeartObject
	HeartAction
	HeartComma
	HeartDate

	heartCount
)

var heartNames = [heartCount]string{
	HeartWord:     "word",
	HeartSetWord:  "set-word",
	HeartGetWord:  "get-word",
	HeartMetaWord: "meta-word",
	HeartBlock:    "block",
	HeartGroup:    "group",
	HeartPath:     "path",
	HeartTuple:    "tuple",
	HeartInteger:  "integer",
	HeartDecimal:  "decimal",
	HeartText:     "text",
	HeartTag:      "tag",
	HeartBlank:    "blank",
	HeartLogic:    "logic",
	HeartError:    "error",
	HeartObject:   "object",
	HeartAction:   "action",
	HeartComma:    "comma",
	HeartDate:     "date",
}

func (h Heart) String() string {
	if int(h) < len(heartNames) && heartNames[h] != "" {
		return heartNames[h]
	}
	return "unknown-heart"
}

// bindableHearts marks which hearts carry a binding (a Specifier node) in
// their Extra slot rather than inline bits. Array-shaped and word-shaped
// hearts are bindable; scalars (integer, decimal, logic, blank, date,
// comma) are not. Object and Action are bindable: an object's archetype
// and a function's body array both need a binding context.
var bindableHearts = [heartCount]bool{
	HeartWord:     true,
	HeartSetWord:  true,
	HeartGetWord:  true,
	HeartMetaWord: true,
	HeartBlock:    true,
	HeartGroup:    true,
	HeartPath:     true,
	HeartTuple:    true,
	HeartObject:   true,
	HeartAction:   true,
}

// Bindable reports whether h carries a Specifier binding in Extra. Non-
// bindable hearts instead pack inline data (integer high bits, date parts,
// and so on) into the same slot.
func Bindable(h Heart) bool {
	return int(h) < len(bindableHearts) && bindableHearts[h]
}

// unstableHearts names the hearts whose antiform (quote byte 0) is
// unstable: legal only as a direct Atom, never stored in a Value slot
// without decay or meta-quoting.
var unstableHearts = [heartCount]bool{
	HeartBlock:  true, // pack
	HeartGroup:  true, // splice
	HeartError:  true, // raised
	HeartObject: true, // lazy
	HeartComma:  true, // barrier
}

// UnstableAntiform reports whether the antiform of h is unstable per
// spec.md §3.2.
func UnstableAntiform(h Heart) bool {
	return int(h) < len(unstableHearts) && unstableHearts[h]
}
