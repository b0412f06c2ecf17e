package series

import "github.com/wyrdlang/wyrd/internal/stub"

// Binary is a byte-series view (spec.md §3.4): wide=1, with one trailing
// byte conceptually reserved for a terminator/UTF-8-alias safety net
// (the Go slice backing store doesn't need the reservation for length
// tracking, but NewBinary still leaves headroom so an `as` aliasing into
// a String, see text.go, never needs to reallocate just to add the
// implicit NUL the C source relies on).
type Binary struct{ *Series }

// NewBinary allocates an empty managed byte series.
func NewBinary(capacity int) *Binary {
	return &Binary{Make(stub.FlavorBinary, capacity+1)}
}

// Bytes returns the binary's current content.
func (b *Binary) Bytes() []byte { return b.S.Bytes() }

// Append_ adds bytes to the end after a read-only check.
func Append_(b *Binary, data []byte) error {
	if err := FailIfReadOnly(b.Series); err != nil {
		return err
	}
	b.S.SetBytes(append(b.S.Bytes(), data...))
	return nil
}

// AliasAsString reinterprets b as a String sharing its series (spec.md
// §4.4). Returns an error if b's current content is not valid UTF-8.
// UTF-8 is checked only here: bytes later added through b with Append_
// are not checked again, and the String's cached length is not updated.
func AliasAsString(b *Binary) (*String, error) {
	if !isValidUTF8(b.Bytes()) {
		return nil, arrayError("binary content is not valid UTF-8")
	}
	s := &String{Series: b.Series}
	s.recount()
	return s, nil
}
