package series

import (
	"unicode/utf8"

	"github.com/wyrdlang/wyrd/internal/stub"
)

// bookmarkStride is how many codepoints apart consecutive bookmarks are
// placed (spec.md §4.4: "a small sorted list [(char_index, byte_index),
// …] updated on mutations"). A fixed stride keeps bookmark maintenance
// O(1) amortized per mutation instead of needing a balanced structure.
const bookmarkStride = 64

type bookmark struct {
	charIndex int
	byteIndex int
}

// String is a UTF-8-constrained byte series with a maintained codepoint
// length and a bookmark list for O(1)-amortized repeated indexed access
// (spec.md §3.4, §4.4).
type String struct {
	*Series
	codepoints int
	bookmarks  []bookmark
}

// NewString allocates an empty managed UTF-8 string series.
func NewString(capacity int) *String {
	return &String{Series: Make(stub.FlavorString, capacity)}
}

func isValidUTF8(b []byte) bool { return utf8.Valid(b) }

// recount rebuilds the codepoint length and bookmark list from scratch;
// called after AliasAsString and after any bulk byte replacement.
func (s *String) recount() {
	b := s.S.Bytes()
	s.codepoints = 0
	s.bookmarks = s.bookmarks[:0]
	byteIdx := 0
	for byteIdx < len(b) {
		if s.codepoints%bookmarkStride == 0 {
			s.bookmarks = append(s.bookmarks, bookmark{charIndex: s.codepoints, byteIndex: byteIdx})
		}
		_, size := utf8.DecodeRune(b[byteIdx:])
		if size == 0 {
			size = 1
		}
		byteIdx += size
		s.codepoints++
	}
}

// Len returns the codepoint length (not the byte length).
func (s *String) Len() int { return s.codepoints }

// ByteLen returns the underlying byte length.
func (s *String) ByteLen() int { return len(s.S.Bytes()) }

// SetText replaces the string's content wholesale after validating UTF-8
// and a read-only check, then rebuilds codepoint length and bookmarks.
// Raw byte mutation bypassing this entry point is not permitted on a
// string-flagged series (spec.md §4.4).
func SetText(s *String, text string) error {
	if err := FailIfReadOnly(s.Series); err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return arrayError("text is not valid UTF-8")
	}
	s.S.SetBytes([]byte(text))
	s.recount()
	return nil
}

// Text returns the string's content as a Go string.
func (s *String) Text() string { return string(s.S.Bytes()) }

// RuneAt returns the codepoint at char index i, using the nearest
// bookmark at or before i to avoid a full left-to-right scan (spec.md
// §4.4's "O(1) repeated indexed access").
func (s *String) RuneAt(i int) rune {
	if i < 0 || i >= s.codepoints {
		panic("series: string index out of range")
	}
	b := s.S.Bytes()
	bm := s.nearestBookmark(i)
	charIdx, byteIdx := bm.charIndex, bm.byteIndex
	for charIdx < i {
		_, size := utf8.DecodeRune(b[byteIdx:])
		if size == 0 {
			size = 1
		}
		byteIdx += size
		charIdx++
	}
	r, _ := utf8.DecodeRune(b[byteIdx:])
	return r
}

func (s *String) nearestBookmark(charIndex int) bookmark {
	best := bookmark{}
	for _, bm := range s.bookmarks {
		if bm.charIndex <= charIndex {
			best = bm
		} else {
			break
		}
	}
	return best
}
