// Package types contains the type model used in parameter type constraints,
// and the default evaluator deciding whether a value satisfies a type.
//
// There are three kinds of types: nominal types ([*Nominal]) forming a single
// inheritance tree rooted at [Mu], parametric types ([*Param]) like List[Int],
// and references to type captures ([CaptureRef]), which stand for the type of
// an argument bound earlier in the same call.
package types

import "strings"

// Type is a type constraint.
type Type interface {
	// Name returns the name of the type as it would be written in a
	// signature.
	Name() string
}

// Nominal is a named type with an optional parent.
type Nominal struct {
	name   string
	parent *Nominal
}

// Define creates a nominal type. A nil parent means Any.
func Define(name string, parent *Nominal) *Nominal {
	if parent == nil {
		parent = Any
	}
	return &Nominal{name, parent}
}

// Name returns the name of the type.
func (t *Nominal) Name() string { return t.name }

// Parent returns the parent type, or nil for Mu.
func (t *Nominal) Parent() *Nominal { return t.parent }

// IsA reports whether t is u or a descendant of u.
func (t *Nominal) IsA(u *Nominal) bool {
	for ; t != nil; t = t.parent {
		if t == u {
			return true
		}
	}
	return false
}

// Builtin types.
var (
	Mu       = &Nominal{"Mu", nil}
	Any      = &Nominal{"Any", Mu}
	Cool     = &Nominal{"Cool", Any}
	Numeric  = &Nominal{"Numeric", Cool}
	Int      = &Nominal{"Int", Numeric}
	Num      = &Nominal{"Num", Numeric}
	Str      = &Nominal{"Str", Cool}
	Bool     = &Nominal{"Bool", Any}
	Nil      = &Nominal{"Nil", Cool}
	List     = &Nominal{"List", Cool}
	Map      = &Nominal{"Map", Cool}
	Seq      = &Nominal{"Seq", Cool}
	Callable = &Nominal{"Callable", Any}
	Capture  = &Nominal{"Capture", Any}
)

var builtins = []*Nominal{
	Mu, Any, Cool, Numeric, Int, Num, Str, Bool, Nil, List, Map, Seq, Callable, Capture,
}

// Param is a parametric type, a nominal base type applied to type arguments.
// For List and Seq the single argument constrains elements; for Map it
// constrains values.
type Param struct {
	Base *Nominal
	Args []Type
}

// ListOf returns the type List[elem].
func ListOf(elem Type) *Param { return &Param{List, []Type{elem}} }

// MapOf returns the type Map[value].
func MapOf(value Type) *Param { return &Param{Map, []Type{value}} }

// Name returns the name of the type, like "List[Int]".
func (t *Param) Name() string {
	var sb strings.Builder
	sb.WriteString(t.Base.Name())
	sb.WriteByte('[')
	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Name())
	}
	sb.WriteByte(']')
	return sb.String()
}

// CaptureRef refers to a type capture by name.
type CaptureRef string

// Name returns the name of the capture.
func (t CaptureRef) Name() string { return string(t) }

// Captures returns the names of all type captures referenced by t, in the
// order they appear.
func Captures(t Type) []string {
	var names []string
	walk(t, func(ref CaptureRef) { names = append(names, string(ref)) })
	return names
}

func walk(t Type, f func(CaptureRef)) {
	switch t := t.(type) {
	case CaptureRef:
		f(t)
	case *Param:
		for _, arg := range t.Args {
			walk(arg, f)
		}
	}
}

// Substitute replaces every type capture reference in t with the type
// returned by resolve. When resolve returns nil, the reference is kept. The
// argument t is not modified.
func Substitute(t Type, resolve func(name string) Type) Type {
	switch typ := t.(type) {
	case CaptureRef:
		if r := resolve(string(typ)); r != nil {
			return r
		}
		return typ
	case *Param:
		args := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			args[i] = Substitute(arg, resolve)
		}
		return &Param{typ.Base, args}
	default:
		return t
	}
}

// IsAny reports whether t accepts every value without looking at it.
func IsAny(t Type) bool {
	return t == nil || t == Any || t == Mu
}
