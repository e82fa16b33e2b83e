package vals

import "reflect"

// Iterable is implemented by lazily produced sequences.
type Iterable interface {
	// Iterate calls f on each element, stopping when f returns false.
	Iterate(f func(any) bool)
}

// Collect reifies a list or an Iterable into a new list. It reports false
// for other values.
func Collect(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return append([]any(nil), v...), true
	case Iterable:
		var l []any
		v.Iterate(func(e any) bool {
			l = append(l, e)
			return true
		})
		return l, true
	}
	return nil, false
}

// Seq is an Iterable backed by a Go function, suitable for building lazy
// sequences in tests and host code.
type Seq func(yield func(any) bool)

// Iterate calls the underlying function.
func (s Seq) Iterate(f func(any) bool) { s(f) }

// Kind returns "seq".
func (Seq) Kind() string { return "seq" }

// Callable is implemented by host values that can be called with an
// argument list.
type Callable interface {
	Call(args Capture) (any, error)
}

// IsCallable reports whether v is a Callable or a Go function.
func IsCallable(v any) bool {
	switch v.(type) {
	case Callable:
		return true
	case Iterable:
		return false
	}
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
