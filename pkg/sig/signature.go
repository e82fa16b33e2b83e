// Package sig contains the parameter and signature model.
//
// A Signature is an ordered sequence of Parameters, built once by New from
// ParamSpec declarations. Construction validates the declarations and
// rejects illegal combinations with a *MalformedError; after that, both
// Signature and Parameter are immutable and safe to share between
// goroutines.
package sig

import (
	"fmt"
	"strings"

	"src.elv.sh/sigbind/pkg/types"
)

// Signature is an ordered, immutable sequence of parameters.
type Signature struct {
	params  []*Parameter
	returns types.Type
	free    []string
}

// New builds a Signature from parameter declarations.
func New(specs ...ParamSpec) (*Signature, error) {
	params := make([]*Parameter, len(specs))
	for i, spec := range specs {
		p, err := newParameter(i, spec)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	s := &Signature{params: params}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is like New, but panics on error. It is intended for signatures
// declared statically and in tests.
func MustNew(specs ...ParamSpec) *Signature {
	s, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

func newParameter(i int, spec ParamSpec) (*Parameter, error) {
	pn := parseName(spec.Name)
	describe := spec.Name
	if pn.ident == "" {
		describe = fmt.Sprintf("anonymous parameter at position %d", i)
	}
	malformed := func(format string, args ...any) error {
		return &MalformedError{
			Reason: fmt.Sprintf(format, args...),
			Param:  describe, Index: i, Range: spec.Range}
	}
	if pn.malformed != "" {
		return nil, malformed("%s", pn.malformed)
	}
	if int(spec.Sigil) >= len(sigilStrings) {
		return nil, malformed("unknown sigil class %d", spec.Sigil)
	}
	if int(spec.Trait) >= len(traitNames) {
		return nil, malformed("unknown trait %d", spec.Trait)
	}

	sigil := spec.Sigil
	if pn.hasSigil {
		if sigil != SigilScalar && sigil != pn.sigil &&
			!(sigil == SigilPositionalBindFailover && pn.sigil == SigilPositional) {
			return nil, malformed("sigil %s conflicts with declared sigil class %s", pn.sigil, sigil.Name())
		}
		if sigil != SigilPositionalBindFailover {
			sigil = pn.sigil
		}
	}
	if spec.BindFailover {
		if sigil != SigilPositional && sigil != SigilPositionalBindFailover {
			return nil, malformed("bind failover requires the @ sigil")
		}
		sigil = SigilPositionalBindFailover
	}
	mode, reason := deriveMode(sigil, spec.Trait)
	if reason != "" {
		return nil, malformed("%s", reason)
	}

	arity := ArityPositional
	if spec.Named || (spec.Slurpy && sigil == SigilAssociative) {
		arity = ArityNamed
	}
	if sigil == SigilCaptureAll {
		switch {
		case spec.Named:
			return nil, malformed("a capture-all parameter cannot be named")
		case spec.Slurpy:
			return nil, malformed("a capture-all parameter is already slurpy")
		case spec.Invocant:
			return nil, malformed("a capture-all parameter cannot be the invocant")
		case spec.Default != nil:
			return nil, malformed("a capture-all parameter cannot have a default")
		}
	}
	if spec.Slurpy {
		switch sigil {
		case SigilPositional, SigilPositionalBindFailover:
			if spec.Named {
				return nil, malformed("a slurpy @ parameter cannot be named")
			}
		case SigilAssociative:
		default:
			return nil, malformed("a slurpy parameter must have the @ or %% sigil")
		}
		if spec.Default != nil {
			return nil, malformed("a slurpy parameter cannot have a default")
		}
	}

	var aliases []string
	if arity == ArityNamed && !spec.Slurpy {
		if len(spec.Aliases) == 0 {
			if pn.ident == "" {
				return nil, malformed("an anonymous named parameter needs an alias")
			}
			aliases = []string{pn.ident}
		}
		for _, alias := range spec.Aliases {
			if !isIdentifier(alias) {
				return nil, malformed("invalid named alias %q", alias)
			}
			if !contains(aliases, alias) {
				aliases = append(aliases, alias)
			}
		}
	} else if len(spec.Aliases) > 0 {
		return nil, malformed("only a named parameter can have aliases")
	}

	optional := spec.Optional || spec.Default != nil || spec.Slurpy || sigil == SigilCaptureAll
	if spec.Invocant {
		if arity == ArityNamed || spec.Slurpy {
			return nil, malformed("the invocant must be positional")
		}
		if optional {
			return nil, malformed("the invocant cannot be optional")
		}
	}
	if mode == BindMutable && optional {
		return nil, malformed("an optional parameter cannot be rw")
	}

	var captures []string
	for _, c := range spec.Captures {
		if !isIdentifier(c) {
			return nil, malformed("invalid type capture name %q", c)
		}
		if contains(captures, c) {
			return nil, malformed("type capture %s declared twice", c)
		}
		captures = append(captures, c)
	}

	typ := spec.Type
	if typ == nil {
		typ = types.Any
	}
	name := ""
	if pn.ident != "" {
		name = spec.Name
	}
	return &Parameter{
		index:    i,
		name:     name,
		ident:    pn.ident,
		sigil:    sigil,
		twigil:   pn.twigil,
		typ:      typ,
		where:    append([]Constraint(nil), spec.Where...),
		arity:    arity,
		aliases:  aliases,
		slurpy:   spec.Slurpy,
		optional: optional,
		invocant: spec.Invocant,
		mode:     mode,
		trait:    spec.Trait,
		dflt:     spec.Default,
		captures: captures,
		sub:      spec.Sub,
		rng:      spec.Range,
	}, nil
}

// check validates the relationships between parameters.
func (s *Signature) check() error {
	malformed := func(p *Parameter, format string, args ...any) error {
		return &MalformedError{
			Reason: fmt.Sprintf(format, args...),
			Param:  p.Describe(), Index: p.index, Range: p.rng}
	}

	// Where each type capture is declared, to tell forward references from
	// free ones.
	declaredAt := make(map[string]int)
	nCaptureAll := 0
	for _, p := range s.params {
		for _, c := range p.captures {
			if j, ok := declaredAt[c]; ok {
				return malformed(p, "type capture %s already declared by %s", c, s.params[j].Describe())
			}
			declaredAt[c] = p.index
		}
		if p.sigil == SigilCaptureAll {
			nCaptureAll++
			if nCaptureAll > 1 {
				return malformed(p, "more than one capture-all parameter")
			}
		}
	}

	names := make(map[string]*Parameter)
	aliasOwner := make(map[string]*Parameter)
	var seenOptional, seenSlurpyPositional, seenSlurpyNamed bool
	for i, p := range s.params {
		if p.name != "" {
			if q, dup := names[p.name]; dup {
				return malformed(p, "redeclares parameter %s at position %d", p.name, q.index)
			}
			names[p.name] = p
		}
		if p.invocant && i != 0 {
			return malformed(p, "the invocant must be the first parameter")
		}
		switch {
		case p.sigil == SigilCaptureAll:
			if i != len(s.params)-1 {
				return malformed(p, "a capture-all parameter must be the last parameter")
			}
		case p.arity == ArityPositional && p.slurpy:
			if seenSlurpyPositional {
				return malformed(p, "more than one slurpy positional parameter")
			}
			seenSlurpyPositional = true
		case p.arity == ArityPositional:
			if seenSlurpyPositional {
				return malformed(p, "a positional parameter cannot follow a slurpy positional parameter")
			}
			if p.optional {
				seenOptional = true
			} else if seenOptional {
				return malformed(p, "a required positional parameter cannot follow an optional one")
			}
		case p.slurpy:
			if seenSlurpyNamed {
				return malformed(p, "more than one slurpy named parameter")
			}
			seenSlurpyNamed = true
		default:
			for _, alias := range p.aliases {
				if q, ok := aliasOwner[alias]; ok {
					return malformed(p, "named alias %s is already used by %s", alias, q.Describe())
				}
				aliasOwner[alias] = p
			}
		}

		for _, ref := range types.Captures(p.typ) {
			if j, ok := declaredAt[ref]; !ok {
				s.addFree(ref)
			} else if j >= i {
				return malformed(p, "type capture %s is used before it is declared", ref)
			}
		}
		if p.sub != nil {
			for _, ref := range p.sub.free {
				if j, ok := declaredAt[ref]; !ok {
					s.addFree(ref)
				} else if j > i {
					return malformed(p, "type capture %s is used before it is declared", ref)
				}
			}
		}
	}
	return nil
}

func (s *Signature) addFree(name string) {
	if !contains(s.free, name) {
		s.free = append(s.free, name)
	}
}

// Len returns the number of parameters.
func (s *Signature) Len() int { return len(s.params) }

// Param returns the i-th parameter.
func (s *Signature) Param(i int) *Parameter { return s.params[i] }

// Params returns all parameters in declaration order. The returned slice may
// be modified by the caller without affecting s.
func (s *Signature) Params() []*Parameter {
	return append([]*Parameter(nil), s.params...)
}

// Lookup finds a parameter by its declared name.
func (s *Signature) Lookup(name string) (*Parameter, bool) {
	for _, p := range s.params {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Arity returns the number of required positional arguments, the invocant
// included.
func (s *Signature) Arity() int {
	n := 0
	for _, p := range s.params {
		if p.Positional() && !p.slurpy && !p.optional {
			n++
		}
	}
	return n
}

// Count returns the maximum number of positional arguments accepted, or -1 if
// there is no upper bound.
func (s *Signature) Count() int {
	n := 0
	for _, p := range s.params {
		switch {
		case p.sigil == SigilCaptureAll, p.Positional() && p.slurpy:
			return -1
		case p.Positional():
			n++
		}
	}
	return n
}

// HasSlurpy reports whether any parameter absorbs an unbounded number of
// arguments: a slurpy or a capture-all parameter.
func (s *Signature) HasSlurpy() bool {
	for _, p := range s.params {
		if p.slurpy || p.sigil == SigilCaptureAll {
			return true
		}
	}
	return false
}

// InvocantIndex returns the index of the invocant, which is always 0, or -1
// if there is no invocant.
func (s *Signature) InvocantIndex() int {
	if len(s.params) > 0 && s.params[0].invocant {
		return 0
	}
	return -1
}

// Invocant returns the invocant parameter, or nil.
func (s *Signature) Invocant() *Parameter {
	if i := s.InvocantIndex(); i >= 0 {
		return s.params[i]
	}
	return nil
}

// Named returns the named parameters in declaration order.
func (s *Signature) Named() []*Parameter {
	var named []*Parameter
	for _, p := range s.params {
		if p.Named() {
			named = append(named, p)
		}
	}
	return named
}

// FreeCaptures returns the type captures referenced but not declared by the
// signature; they resolve against an enclosing signature when s is nested.
func (s *Signature) FreeCaptures() []string {
	return append([]string(nil), s.free...)
}

// Returns returns the declared return type, or nil.
func (s *Signature) Returns() types.Type { return s.returns }

// WithReturns returns a copy of s with the given return type.
func (s *Signature) WithReturns(t types.Type) *Signature {
	return &Signature{s.params, t, s.free}
}

// String renders the signature, like ":($x, @y?, *%h)".
func (s *Signature) String() string { return ":" + s.inner() }

func (s *Signature) inner() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range s.params {
		if i > 0 {
			if s.params[i-1].invocant {
				sb.WriteString(": ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(p.String())
	}
	if len(s.params) == 1 && s.params[0].invocant {
		sb.WriteByte(':')
	}
	if s.returns != nil {
		sb.WriteString(" --> ")
		sb.WriteString(s.returns.Name())
	}
	sb.WriteByte(')')
	return sb.String()
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
