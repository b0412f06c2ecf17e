// Package wyrderr carries two of the three error kinds of spec.md §7
// (Fail and Throw) as a Go type; the third, Panic, is a genuine Go panic
// raised through Bug. The type is generalized from the teacher's
// internal/errors.SentraError (typed error + source location + call
// stack) rather than invented from scratch.
package wyrderr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind distinguishes the three error-handling effects spec.md §7 defines.
// Panic is not represented here at all — a panic is a genuine Go panic()
// for an invariant violation, never a returned error (see Bug below).
type Kind string

const (
	// KindFail is a user-visible recoverable error, carried as a value
	// (either an antiform error sitting in a Level's out cell — a
	// "definitional" failure — or thrown abruptly to unwind).
	KindFail Kind = "fail"
	// KindThrow is non-local control flow: return/break/continue/throw,
	// carrying a label rather than a message.
	KindThrow Kind = "throw"
)

// Frame is one entry in an Error's captured Level chain, generalizing the
// teacher's errors.StackFrame (Function/File/Line/Column) to the core's
// notion of a frame: an executor label and the level depth it ran at.
type Frame struct {
	Label string
	Depth int
}

// Error is the Go carrier for a Fail or Throw. Message is meaningful for
// KindFail; Label is meaningful for KindThrow (the thrown value rides
// along separately — see internal/level.ThrownPayload).
type Error struct {
	Kind    Kind
	Message string
	Label   string
	Stack   []Frame
	cause   error
}

// NewFail creates a definitional-or-abrupt Fail error wrapped with
// github.com/pkg/errors so Cause()/StackTrace() work the normal Go way
// from the point it was first raised.
func NewFail(message string) *Error {
	return &Error{Kind: KindFail, Message: message, cause: errors.New(message)}
}

// NewThrow creates a Throw carrying label (e.g. "return", "break", or a
// user-defined catch name).
func NewThrow(label string) *Error {
	return &Error{Kind: KindThrow, Label: label, cause: errors.Errorf("throw: %s", label)}
}

// WithStack records the Level chain active when the error was raised.
func (e *Error) WithStack(frames []Frame) *Error {
	e.Stack = frames
	return e
}

// Error implements the error interface, formatted close to the teacher's
// SentraError.Error(): kind, message or label, then the captured stack.
func (e *Error) Error() string {
	var sb strings.Builder
	switch e.Kind {
	case KindFail:
		sb.WriteString(fmt.Sprintf("%s: %s\n", e.Kind, e.Message))
	case KindThrow:
		sb.WriteString(fmt.Sprintf("%s: %s\n", e.Kind, e.Label))
	}
	for _, f := range e.Stack {
		sb.WriteString(fmt.Sprintf("  at %s (level depth %d)\n", f.Label, f.Depth))
	}
	return sb.String()
}

// Cause exposes the pkg/errors-wrapped root cause, so callers can use
// errors.Cause(e) / errors.Is the normal way.
func (e *Error) Cause() error { return e.cause }

// Bug panics with a formatted message: the Go-level expression of
// spec.md §7's Panic kind ("catastrophic invariant violation... aborts
// process with a dump. Implementation bugs only."). Never return this as
// an error value.
func Bug(format string, args ...interface{}) {
	panic(fmt.Sprintf("wyrd: invariant violation: "+format, args...))
}
