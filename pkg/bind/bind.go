// Package bind binds argument lists to signatures.
//
// Binding walks the parameters of a signature in declaration order, matching
// each to an actual argument, applying defaults, checking sigils and type
// constraints, resolving type captures and wrapping the value according to
// the binding mode. It is all-or-nothing: either every parameter binds and a
// *Result is returned, or an *Error describing the first failure is.
//
// A Binder holds no per-call state, so the same Binder and Signature may be
// used from any number of goroutines at once.
package bind

import (
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"src.elv.sh/sigbind/pkg/logutil"
	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/types"
	"src.elv.sh/sigbind/pkg/vals"
	"src.elv.sh/sigbind/pkg/vars"
)

var logger = logutil.GetLogger("[bind] ")

// Args builds an argument list from positional values. Named values can be
// added with the WithNamed method of the result.
func Args(positional ...any) vals.Capture { return vals.NewCapture(positional...) }

// Binder binds arguments using a type evaluator.
type Binder struct {
	// Types answers type constraint and type capture questions. Nil means
	// types.Default.
	Types types.Evaluator
}

// Bind binds args to s using the default evaluator.
func Bind(s *sig.Signature, args vals.Capture) (*Result, error) {
	return Binder{}.Bind(s, args)
}

// Bind binds args to s.
func (b Binder) Bind(s *sig.Signature, args vals.Capture) (*Result, error) {
	ev := b.Types
	if ev == nil {
		ev = types.Default
	}
	res, err := bindSignature(ev, s, args, nil)
	if err != nil {
		if ce := logger.Check(zap.DebugLevel, "bind failed"); ce != nil {
			ce.Write(zap.Stringer("signature", s), zap.String("args", args.Repr()), zap.Error(err))
		}
		return nil, err
	}
	return res, nil
}

// Accepts reports whether args bind to s.
func (b Binder) Accepts(s *sig.Signature, args vals.Capture) bool {
	_, err := b.Bind(s, args)
	return err == nil
}

// State of one call of bindSignature. The capture table of a nested
// signature is seeded from the enclosing one through outer; captures bound
// inside do not flow back out.
type binding struct {
	ev       types.Evaluator
	captures map[string]types.Type
	outer    *binding
}

func (c *binding) resolve(name string) types.Type {
	for b := c; b != nil; b = b.outer {
		if t, ok := b.captures[name]; ok {
			return t
		}
	}
	return nil
}

func bindSignature(ev types.Evaluator, s *sig.Signature, args vals.Capture, outer *binding) (*Result, error) {
	c := &binding{ev: ev, captures: make(map[string]types.Type), outer: outer}
	res := &Result{bound: make([]Bound, 0, s.Len()), types: c.captures}

	pos := args.Positional
	named := make(map[string]any, len(args.Named))
	for k, v := range args.Named {
		named[k] = v
	}
	// Aliases of named parameters, which a named slurpy must leave alone
	// wherever it is declared.
	claimed := make(map[string]bool)
	for _, p := range s.Named() {
		if p.Slurpy() {
			continue
		}
		for _, alias := range p.NamedAliases() {
			claimed[alias] = true
		}
	}

	for _, p := range s.Params() {
		var (
			actual any
			found  bool
		)
		switch {
		case p.Capture():
			actual, found = vals.Capture{Positional: copyList(pos), Named: named}, true
			pos, named = nil, map[string]any{}
		case p.Positional() && p.Slurpy():
			actual, found = copyList(pos), true
			pos = nil
		case p.Positional():
			if len(pos) > 0 {
				actual, found = pos[0], true
				pos = pos[1:]
			}
		case p.Named() && p.Slurpy():
			rest := make(map[string]any)
			for k, v := range named {
				if !claimed[k] {
					rest[k] = v
					delete(named, k)
				}
			}
			actual, found = rest, true
		default:
			for _, alias := range p.NamedAliases() {
				if v, ok := named[alias]; ok {
					actual, found = v, true
					delete(named, alias)
					break
				}
			}
		}

		source := FromArgument
		if !found {
			switch {
			case p.Default() != nil:
				v, err := p.Default()()
				if err != nil {
					return nil, paramError(ErrDefaultFailed, p, func(e *Error) { e.Cause = err })
				}
				actual, source = v, FromDefault
			case p.Optional():
				res.bound = append(res.bound, Bound{Param: p, Value: unsetValue(p), Source: Unset})
				continue
			default:
				return nil, paramError(ErrMissingRequired, p, nil)
			}
		}

		bound, err := c.bindParam(p, actual)
		if err != nil {
			return nil, err
		}
		bound.Source = source
		res.bound = append(res.bound, bound)
	}

	if len(pos) > 0 {
		n := len(args.Positional) - len(pos)
		return nil, &Error{
			Kind: ErrTooManyPositionals, Index: -1,
			Expected: "at most " + strconv.Itoa(n) + " positional arguments",
			Actual:   strconv.Itoa(len(args.Positional)),
		}
	}
	if len(named) > 0 {
		keys := make([]string, 0, len(named))
		for k := range named {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, &Error{Kind: ErrUnexpectedNamed, Index: -1, Reason: "no parameter accepts :" + keys[0]}
	}
	return res, nil
}

func (c *binding) bindParam(p *sig.Parameter, actual any) (Bound, error) {
	v := vars.Decont(actual)

	switch p.Sigil() {
	case sig.SigilPositional:
		if _, ok := v.([]any); !ok {
			return Bound{}, c.typeError(p, "Positional", v)
		}
	case sig.SigilPositionalBindFailover:
		l, ok := vals.Collect(v)
		if !ok {
			return Bound{}, c.typeError(p, "Positional or Iterable", v)
		}
		if _, isList := v.([]any); !isList {
			// Reified sequences replace the argument, also in raw mode.
			actual, v = l, l
		}
	case sig.SigilAssociative:
		if _, ok := v.(map[string]any); !ok {
			return Bound{}, c.typeError(p, "Associative", v)
		}
	case sig.SigilCallable:
		if !vals.IsCallable(v) {
			return Bound{}, c.typeError(p, "Callable", v)
		}
	}

	if err := c.checkType(p, v); err != nil {
		return Bound{}, err
	}
	for _, cons := range p.Constraints() {
		if !cons.Test(v) {
			return Bound{}, paramError(ErrTypeConstraint, p, func(e *Error) {
				e.Reason = "constraint " + cons.Desc + " not satisfied by " + vals.Repr(v)
			})
		}
	}

	var value any
	switch p.Mode() {
	case sig.ModeReadonly:
		value = vars.NewReadOnly(v)
	case sig.ModeRw:
		if !vars.IsAssignable(actual) {
			return Bound{}, paramError(ErrNotAssignable, p, func(e *Error) {
				e.Reason = "cannot bind " + describe(actual) + " to an rw parameter"
			})
		}
		value = actual
	case sig.ModeCopy:
		value = vars.FromInit(vals.Copy(v))
	default:
		value = actual
	}

	for _, name := range p.TypeCaptures() {
		c.captures[name] = c.ev.TypeOf(v)
	}

	bound := Bound{Param: p, Value: value}
	if sub := p.SubSignature(); sub != nil {
		args, ok := vals.Destructure(v)
		if !ok {
			return Bound{}, paramError(ErrDestructureMismatch, p, func(e *Error) {
				e.Reason = "cannot destructure " + describe(v)
			})
		}
		subRes, err := bindSignature(c.ev, sub, args, c)
		if err != nil {
			return Bound{}, paramError(ErrDestructureMismatch, p, func(e *Error) {
				e.Reason = "against " + sub.String()
				e.Cause = err
			})
		}
		bound.Sub = subRes
	}
	return bound, nil
}

// Positional and associative parameters constrain their elements.
func (c *binding) checkType(p *sig.Parameter, v any) error {
	t := p.Type()
	if types.IsAny(t) {
		return nil
	}
	resolved := types.Substitute(t, c.resolve)
	want := resolved
	switch p.Sigil() {
	case sig.SigilPositional, sig.SigilPositionalBindFailover:
		want = types.ListOf(resolved)
	case sig.SigilAssociative:
		want = types.MapOf(resolved)
	}
	if c.ev.Satisfies(want, v) {
		return nil
	}
	expected := want.Name()
	if resolved.Name() != t.Name() {
		expected = fmt.Sprintf("%s (%s)", t.Name(), expected)
	}
	return c.typeError(p, expected, v)
}

func (c *binding) typeError(p *sig.Parameter, expected string, v any) error {
	return paramError(ErrTypeConstraint, p, func(e *Error) {
		e.Expected = expected
		e.Actual = c.ev.TypeOf(v).Name() + " " + vals.Repr(v)
	})
}

func paramError(kind error, p *sig.Parameter, f func(*Error)) *Error {
	e := &Error{Kind: kind, Param: p.Describe(), Index: p.Index()}
	if f != nil {
		f(e)
	}
	return e
}

func unsetValue(p *sig.Parameter) any {
	switch p.Sigil() {
	case sig.SigilPositional, sig.SigilPositionalBindFailover:
		return []any{}
	case sig.SigilAssociative:
		return map[string]any{}
	}
	return nil
}

func copyList(l []any) []any {
	return append([]any{}, l...)
}

func describe(v any) string {
	if _, ok := v.(vars.Var); ok {
		return "a read-only container"
	}
	return "the value " + vals.Repr(v)
}
