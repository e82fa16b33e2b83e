package sig

import (
	"strconv"
	"strings"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/types"
)

// Thunk produces the default value of a parameter. It is called lazily by the
// binder, at most once per bind, and only when the parameter is omitted.
type Thunk func() (any, error)

// Value returns a Thunk that always produces v.
func Value(v any) Thunk {
	return func() (any, error) { return v, nil }
}

// Constraint is an additional predicate on a parameter's value, like a
// "where" clause. All constraints of a parameter must hold.
type Constraint struct {
	// Desc describes the constraint in error messages.
	Desc string
	Test func(v any) bool
}

// ParamSpec declares a parameter. It is the input to New, which validates it
// and produces an immutable Parameter.
type ParamSpec struct {
	// Name is the declared name including sigil and twigil, like "$x",
	// "@*rest" or "|c". A lone sigil declares an anonymous parameter; an
	// empty Name declares an anonymous parameter with the given Sigil.
	Name  string
	Sigil Sigil
	// BindFailover makes an "@" parameter accept lazy sequences.
	BindFailover bool

	// Type is the nominal type constraint. Nil means Any.
	Type  types.Type
	Where []Constraint

	// Named makes the parameter named. Aliases lists the names callers may
	// use; when empty, the identifier of Name is used.
	Named   bool
	Aliases []string

	Slurpy   bool
	Optional bool
	Invocant bool
	Trait    Trait
	Default  Thunk

	// Captures lists type captures bound to the runtime type of the
	// argument.
	Captures []string
	// Sub is a nested signature the argument is destructured against.
	Sub *Signature

	Range diag.Ranging
}

// Parameter describes one formal parameter. It is immutable; all its query
// methods are side-effect free and never fail.
type Parameter struct {
	index    int
	name     string
	ident    string
	sigil    Sigil
	twigil   string
	typ      types.Type
	where    []Constraint
	arity    Arity
	aliases  []string
	slurpy   bool
	optional bool
	invocant bool
	mode     BindingMode
	trait    Trait
	dflt     Thunk
	captures []string
	sub      *Signature
	rng      diag.Ranging
}

// Index returns the position of the parameter in its signature.
func (p *Parameter) Index() int { return p.index }

// Name returns the declared name with sigil and twigil, or "" for an
// anonymous parameter.
func (p *Parameter) Name() string { return p.name }

// Ident returns the name without sigil and twigil, or "" for an anonymous
// parameter.
func (p *Parameter) Ident() string { return p.ident }

// Sigil returns the sigil class.
func (p *Parameter) Sigil() Sigil { return p.sigil }

// Twigil returns the twigil, or "" if there is none.
func (p *Parameter) Twigil() string { return p.twigil }

// Type returns the nominal type constraint, types.Any when none was declared.
func (p *Parameter) Type() types.Type { return p.typ }

// Constraints returns the additional constraints.
func (p *Parameter) Constraints() []Constraint {
	return append([]Constraint(nil), p.where...)
}

// Arity returns the arity class.
func (p *Parameter) Arity() Arity { return p.arity }

// Named reports whether the parameter is named.
func (p *Parameter) Named() bool { return p.arity == ArityNamed }

// NamedAliases returns the names callers may use for a named parameter. It is
// empty for positional parameters and named slurpies.
func (p *Parameter) NamedAliases() []string {
	return append([]string(nil), p.aliases...)
}

// Positional reports whether the parameter binds positional arguments. A
// capture-all parameter is neither positional nor named.
func (p *Parameter) Positional() bool {
	return p.arity == ArityPositional && p.sigil != SigilCaptureAll
}

// Slurpy reports whether the parameter absorbs all remaining positional or
// named arguments.
func (p *Parameter) Slurpy() bool { return p.slurpy }

// Optional reports whether the parameter may be omitted.
func (p *Parameter) Optional() bool { return p.optional }

// Invocant reports whether the parameter is the invocant.
func (p *Parameter) Invocant() bool { return p.invocant }

// BindingMode returns the binding mode.
func (p *Parameter) BindingMode() BindingMode { return p.mode }

// Mode returns the classification of the parameter's binding behavior.
func (p *Parameter) Mode() Mode {
	switch {
	case p.sigil == SigilCaptureAll:
		return ModeCapture
	case p.mode == BindMutable:
		return ModeRw
	case p.mode == BindCopy:
		return ModeCopy
	case p.mode == BindRaw:
		return ModeRaw
	}
	return ModeReadonly
}

// Rw reports whether the parameter is "is rw".
func (p *Parameter) Rw() bool { return p.Mode() == ModeRw }

// Copy reports whether the parameter is "is copy".
func (p *Parameter) Copy() bool { return p.Mode() == ModeCopy }

// Readonly reports whether the parameter binds read-only.
func (p *Parameter) Readonly() bool { return p.Mode() == ModeReadonly }

// Raw reports whether the parameter binds raw. It is false for capture-all
// parameters, even though they bind without containers too.
func (p *Parameter) Raw() bool { return p.Mode() == ModeRaw }

// Capture reports whether the parameter is a capture-all parameter.
func (p *Parameter) Capture() bool { return p.Mode() == ModeCapture }

// Default returns the default thunk, or nil if there is none.
func (p *Parameter) Default() Thunk { return p.dflt }

// TypeCaptures returns the names of type captures the parameter introduces.
func (p *Parameter) TypeCaptures() []string {
	return append([]string(nil), p.captures...)
}

// SubSignature returns the nested signature, or nil.
func (p *Parameter) SubSignature() *Signature { return p.sub }

// Range returns the source range of the declaration.
func (p *Parameter) Range() diag.Ranging { return p.rng }

// Describe returns a short description for error messages, like "$x" or
// "anonymous $ parameter at position 2".
func (p *Parameter) Describe() string {
	if p.name != "" {
		return p.name
	}
	return "anonymous " + p.sigil.String() + " parameter at position " + strconv.Itoa(p.index)
}

// String renders the parameter as it would appear in a signature, like
// "Int ::T *@rest is copy".
func (p *Parameter) String() string {
	var sb strings.Builder
	if !types.IsAny(p.typ) {
		sb.WriteString(p.typ.Name())
		sb.WriteByte(' ')
	}
	for _, c := range p.captures {
		sb.WriteString("::")
		sb.WriteString(c)
		sb.WriteByte(' ')
	}
	if p.slurpy {
		sb.WriteByte('*')
	}
	name := p.name
	if name == "" {
		name = p.sigil.String()
	}
	if p.arity == ArityNamed && !p.slurpy {
		var aliases []string
		if !(len(p.aliases) == 1 && p.aliases[0] == p.ident) {
			aliases = p.aliases
		}
		for _, alias := range aliases {
			sb.WriteString(":" + alias + "(")
		}
		sb.WriteString(":" + name)
		sb.WriteString(strings.Repeat(")", len(aliases)))
	} else {
		sb.WriteString(name)
	}
	switch {
	case p.slurpy || p.sigil == SigilCaptureAll || p.invocant:
	case p.arity == ArityPositional && p.optional && p.dflt == nil:
		sb.WriteByte('?')
	case p.arity == ArityNamed && !p.optional:
		sb.WriteByte('!')
	}
	if p.trait != TraitNone {
		sb.WriteString(" is " + p.trait.String())
	}
	if p.sub != nil {
		sb.WriteString(" " + p.sub.inner())
	}
	for _, c := range p.where {
		sb.WriteString(" where " + c.Desc)
	}
	if p.dflt != nil {
		sb.WriteString(" = {...}")
	}
	return sb.String()
}
