package sig

import (
	"errors"
	"fmt"

	"src.elv.sh/sigbind/pkg/diag"
)

// ErrMalformed is matched by every *MalformedError with errors.Is.
var ErrMalformed = errors.New("malformed signature")

// MalformedError is returned by New when the parameters do not form a valid
// signature.
type MalformedError struct {
	Reason string
	// Param describes the offending parameter; empty if the problem is not
	// tied to one parameter.
	Param string
	// Index is the position of the offending parameter, or -1.
	Index int
	Range diag.Ranging
}

func (e *MalformedError) Error() string {
	if e.Index < 0 {
		return "malformed signature: " + e.Reason
	}
	return fmt.Sprintf("malformed signature: parameter %s: %s", e.Param, e.Reason)
}

// Is reports whether target is ErrMalformed.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

const compilationErrorType = "compilation error"

// Diag converts the error to a diagnostic showing the offending declaration
// in src.
func (e *MalformedError) Diag(src diag.Source) *diag.Error {
	msg := e.Reason
	if e.Index >= 0 {
		msg = "parameter " + e.Param + ": " + e.Reason
	}
	return &diag.Error{
		Type:    compilationErrorType,
		Message: "malformed signature: " + msg,
		Context: *diag.ContextIn(src, e.Range),
		Cause:   e,
	}
}
