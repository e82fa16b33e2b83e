package bind

import (
	"fmt"

	"src.elv.sh/sigbind/pkg/errutil"
	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/vals"
)

// Dispatch binds args to the first candidate that accepts them, using the
// default evaluator.
func Dispatch(cands []*sig.Signature, args vals.Capture) (int, *Result, error) {
	return Binder{}.Dispatch(cands, args)
}

// Dispatch binds args to the first candidate that accepts them, and returns
// its index and the result. When no candidate does, the returned error wraps
// ErrNoCandidate and the error of every candidate.
func (b Binder) Dispatch(cands []*sig.Signature, args vals.Capture) (int, *Result, error) {
	var errs []error
	for i, s := range cands {
		res, err := b.Bind(s, args)
		if err == nil {
			return i, res, nil
		}
		errs = append(errs, fmt.Errorf("candidate %d %s: %w", i, s, err))
	}
	if len(errs) == 0 {
		return -1, nil, ErrNoCandidate
	}
	return -1, nil, fmt.Errorf("%w: %w", ErrNoCandidate, errutil.Multi(errs...))
}
