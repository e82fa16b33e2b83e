package bind

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds of bind errors. An *Error matches its kind with errors.Is, and the
// kinds of its causes through Unwrap.
var (
	ErrMissingRequired     = errors.New("missing required argument")
	ErrNotAssignable       = errors.New("argument not assignable")
	ErrDestructureMismatch = errors.New("cannot destructure argument")
	ErrTypeConstraint      = errors.New("type constraint violation")
	ErrTooManyPositionals  = errors.New("too many positional arguments")
	ErrUnexpectedNamed     = errors.New("unexpected named argument")
	ErrDefaultFailed       = errors.New("default value failed")
)

// ErrNoCandidate is returned by Dispatch when no candidate binds.
var ErrNoCandidate = errors.New("no candidate signature matches the arguments")

// Error is returned when binding fails. It identifies the failing parameter
// and the reason.
type Error struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Param describes the failing parameter, or is empty when the failure is
	// not tied to a parameter, such as leftover arguments.
	Param string
	// Index is the position of the failing parameter, or -1.
	Index int
	// Expected and Actual describe the mismatch, when there is one.
	Expected string
	Actual   string
	Reason   string
	// Cause is the underlying error: the error of a default thunk, or of
	// binding a nested signature.
	Cause error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Param != "" {
		sb.WriteString(": parameter ")
		sb.WriteString(e.Param)
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&sb, ": expected %s, got %s", e.Expected, e.Actual)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap returns the cause of e.
func (e *Error) Unwrap() error { return e.Cause }
