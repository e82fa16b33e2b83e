// Package vals contains basic facilities for manipulating the values bound to
// parameters.
//
// Lists are represented as []any, maps as map[string]any, and argument lists
// as [Capture]. Numbers are Go int and float64; other integer and float types
// are accepted where noted.
package vals

import "reflect"

// Kinder wraps the Kind method.
type Kinder interface {
	Kind() string
}

// Kind returns the "kind" of the value, a coarse classification used in error
// messages. It is implemented for nil, bool, string, numbers, lists, maps,
// Capture, callables, and types satisfying the Kinder interface. For other
// types, it returns the Go type name of the argument preceded by "!!".
func Kind(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "num"
	case []any:
		return "list"
	case map[string]any:
		return "map"
	case Kinder:
		return v.Kind()
	}
	if IsCallable(v) {
		return "fn"
	}
	return "!!" + reflect.TypeOf(v).String()
}

// Lener wraps the Len method.
type Lener interface {
	// Len computes the length of the receiver.
	Len() int
}

// Len returns the length of the value, or -1 if the value does not have a
// well-defined length. It is implemented for strings, lists, maps and types
// satisfying the Lener interface.
func Len(v any) int {
	switch v := v.(type) {
	case string:
		return len(v)
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	case Lener:
		return v.Len()
	}
	return -1
}

// Copy returns a copy of v that shares no mutable state with it at the top
// level: lists, maps and captures are copied shallowly, other values are
// returned as is.
func Copy(v any) any {
	switch v := v.(type) {
	case []any:
		return append([]any(nil), v...)
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = e
		}
		return m
	case Capture:
		return v.Copy()
	}
	return v
}
