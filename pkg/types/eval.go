package types

import (
	"src.elv.sh/sigbind/pkg/vals"
)

// Evaluator answers type questions about values. The binder consults it as
// an opaque service; hosts with their own type systems supply their own
// implementation.
type Evaluator interface {
	// TypeOf returns the runtime type of a value. This is what a type
	// capture records.
	TypeOf(v any) Type
	// Satisfies reports whether v satisfies the type constraint t.
	Satisfies(t Type, v any) bool
}

// Typed is implemented by host values that carry their own nominal type.
type Typed interface {
	Type() *Nominal
}

// Default is the Evaluator for the builtin types and host values
// implementing Typed.
var Default Evaluator = evaluator{}

type evaluator struct{}

func (evaluator) TypeOf(v any) Type { return nominalOf(v) }

func nominalOf(v any) *Nominal {
	if t, ok := v.(Typed); ok {
		return t.Type()
	}
	switch vals.Kind(v) {
	case "nil":
		return Nil
	case "bool":
		return Bool
	case "string":
		return Str
	case "int":
		return Int
	case "num":
		return Num
	case "list":
		return List
	case "map":
		return Map
	case "capture":
		return Capture
	case "seq":
		return Seq
	case "fn":
		return Callable
	}
	if _, ok := v.(vals.Iterable); ok {
		return Seq
	}
	if vals.IsCallable(v) {
		return Callable
	}
	return Any
}

func (e evaluator) Satisfies(t Type, v any) bool {
	switch t := t.(type) {
	case nil:
		return true
	case *Nominal:
		return nominalOf(v).IsA(t)
	case *Param:
		if !nominalOf(v).IsA(t.Base) {
			return false
		}
		if len(t.Args) == 0 {
			return true
		}
		elem := t.Args[0]
		switch v := v.(type) {
		case []any:
			for _, e2 := range v {
				if !e.Satisfies(elem, e2) {
					return false
				}
			}
		case map[string]any:
			for _, e2 := range v {
				if !e.Satisfies(elem, e2) {
					return false
				}
			}
		}
		return true
	case CaptureRef:
		// An unresolved capture constrains nothing.
		return true
	}
	return false
}
