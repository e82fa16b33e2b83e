package vals

import "sort"

// Capture is an argument list: a sequence of positional values plus a map of
// named values. It is what a call site passes to a binder, and what a
// capture-all parameter binds to.
type Capture struct {
	Positional []any
	Named      map[string]any
}

// NewCapture creates a Capture from positional values.
func NewCapture(positional ...any) Capture {
	return Capture{Positional: positional}
}

// WithNamed returns a copy of c with an additional named value.
func (c Capture) WithNamed(name string, v any) Capture {
	c = c.Copy()
	if c.Named == nil {
		c.Named = make(map[string]any)
	}
	c.Named[name] = v
	return c
}

// Kind returns "capture".
func (Capture) Kind() string { return "capture" }

// Len returns the number of positional values, the arity a capture reports.
func (c Capture) Len() int { return len(c.Positional) }

// NamedKeys returns the names of named values in sorted order.
func (c Capture) NamedKeys() []string {
	keys := make([]string, 0, len(c.Named))
	for k := range c.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a shallow copy of c.
func (c Capture) Copy() Capture {
	cp := Capture{Positional: append([]any(nil), c.Positional...)}
	if c.Named != nil {
		cp.Named = make(map[string]any, len(c.Named))
		for k, v := range c.Named {
			cp.Named[k] = v
		}
	}
	return cp
}

// Repr returns the representation of the capture, like "\(1 2 &k=v)".
func (c Capture) Repr() string {
	b := newReprBuilder(`\(`, ")")
	for _, v := range c.Positional {
		b.writeElem(Repr(v))
	}
	for _, k := range c.NamedKeys() {
		b.writeElem("&" + k + "=" + Repr(c.Named[k]))
	}
	return b.String()
}

// Destructurer is implemented by values that can be taken apart by a nested
// signature.
type Destructurer interface {
	Destructure() Capture
}

// Destructure converts a value to a Capture for binding against a nested
// signature. Lists become positional values, maps become named values. It
// reports false for values that cannot be destructured.
func Destructure(v any) (Capture, bool) {
	switch v := v.(type) {
	case Capture:
		return v, true
	case []any:
		return Capture{Positional: v}, true
	case map[string]any:
		return Capture{Named: v}, true
	case Destructurer:
		return v.Destructure(), true
	}
	return Capture{}, false
}
