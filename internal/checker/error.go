// Package checker implements the Hindley-Milner-style matching and
// generic-binding algorithm of spec §4.3: it takes an expected type and
// an untyped Call/Literal tree from the parser and produces a fully
// resolved AST (or a list of errors), expanding NArgs parameter groups
// and unifying TypeNames along the way.
//
// Errors share one small struct for every spec §7 static-error kind,
// the kinds differing only by message text, built through the
// newError/typeMismatch constructors rather than bare fmt.Errorf calls —
// the struct's Key field is what lets the checker collect and localize
// many errors from one typecheck call instead of aborting at the first.
package checker

import "fmt"

// Error is a single located type-checking failure: Key is the
// dot-joined JSON path (spec §3.2), Message is the human-readable text
// spec §7 enumerates by kind (UnknownFunction, TypeMismatch, ...).
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Key, e.Message) }

func newError(key, format string, args ...interface{}) *Error {
	return &Error{Key: key, Message: fmt.Sprintf(format, args...)}
}

func typeMismatch(key string, expected, got string) *Error {
	return newError(key, "Expected %s but found %s instead.", expected, got)
}
