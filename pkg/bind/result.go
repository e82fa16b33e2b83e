package bind

import (
	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/types"
	"src.elv.sh/sigbind/pkg/vars"
)

// Source tells where the value of a bound parameter came from.
type Source uint8

// Possible values of Source.
const (
	FromArgument Source = iota
	FromDefault
	// Unset marks an omitted optional parameter without a default. Its value
	// is nil, or an empty list or map for "@" and "%" parameters.
	Unset
)

var sourceNames = [...]string{"argument", "default", "unset"}

func (s Source) String() string { return sourceNames[s] }

// Bound is one parameter together with what it was bound to.
type Bound struct {
	Param *sig.Parameter
	// Value is a vars.Var for read-only, rw and copy parameters, and the
	// argument as passed for raw and capture parameters.
	Value  any
	Source Source
	// Sub is the result of binding the nested signature, if the parameter
	// has one.
	Sub *Result
}

// Result is the outcome of a successful bind.
type Result struct {
	bound []Bound
	types map[string]types.Type
}

// Bound returns the bound parameters in declaration order.
func (r *Result) Bound() []Bound {
	return append([]Bound(nil), r.bound...)
}

// Get returns what the parameter with the given name was bound to. Names
// bound by nested signatures are found too.
func (r *Result) Get(name string) (any, bool) {
	b, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return b.Value, true
}

// Value is like Get, but returns the value held by a variable instead of the
// variable itself, and nil when the name is not bound.
func (r *Result) Value(name string) any {
	v, _ := r.Get(name)
	return vars.Decont(v)
}

func (r *Result) lookup(name string) (Bound, bool) {
	for _, b := range r.bound {
		if b.Param.Name() == name {
			return b, true
		}
		if b.Sub != nil {
			if sb, ok := b.Sub.lookup(name); ok {
				return sb, true
			}
		}
	}
	return Bound{}, false
}

// Types returns the types bound to the type captures of the signature.
func (r *Result) Types() map[string]types.Type {
	m := make(map[string]types.Type, len(r.types))
	for k, v := range r.types {
		m[k] = v
	}
	return m
}

// Values returns the values of all named parameters, including those of
// nested signatures, with variables replaced by their values.
func (r *Result) Values() map[string]any {
	m := make(map[string]any)
	r.collect(m)
	return m
}

func (r *Result) collect(m map[string]any) {
	for _, b := range r.bound {
		if name := b.Param.Name(); name != "" {
			m[name] = vars.Decont(b.Value)
		}
		if b.Sub != nil {
			b.Sub.collect(m)
		}
	}
}
