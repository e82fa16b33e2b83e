package decl

import (
	"fmt"

	"src.elv.sh/sigbind/pkg/diag"
)

// Error is a problem with a declaration that is not a malformed signature,
// like an unknown type name.
type Error struct {
	Message string
	diag.Ranging
}

func (e *Error) Error() string { return e.Message }

// Diag converts the error to a diagnostic pointing into src.
func (e *Error) Diag(src diag.Source) *diag.Error {
	return &diag.Error{
		Type:    "declaration error",
		Message: e.Message,
		Context: *diag.ContextIn(src, e.Ranging),
		Cause:   e,
	}
}

func errorf(r diag.Ranging, format string, args ...any) *Error {
	return &Error{fmt.Sprintf(format, args...), r}
}
