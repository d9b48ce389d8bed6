package runtime

import "fmt"

// ErrorKind enumerates the runtime error taxonomy of spec §7.
type ErrorKind string

const (
	PropertyNotFound   ErrorKind = "PropertyNotFound"
	IndexOutOfBounds   ErrorKind = "IndexOutOfBounds"
	TypeAssertion      ErrorKind = "TypeAssertion"
	ColorParse         ErrorKind = "ColorParse"
	UnknownRuntimeType ErrorKind = "UnknownRuntimeType"
)

// Error is the single tagged error type every runtime failure raises.
// coalesce() catches it and tries the next alternative; an uncaught
// Error surfaces from the top-level Callable.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
