package types

import (
	"fmt"
	"strings"
	"unicode"
)

// Registry maps type names to nominal types, and parses type expressions.
type Registry struct {
	types map[string]*Nominal
}

// NewRegistry returns a Registry containing the builtin types.
func NewRegistry() *Registry {
	r := &Registry{make(map[string]*Nominal, len(builtins))}
	for _, t := range builtins {
		r.types[t.name] = t
	}
	return r
}

// Define creates a nominal type and registers it. The parent is looked up by
// name; an empty parent name means Any.
func (r *Registry) Define(name, parent string) (*Nominal, error) {
	if _, exists := r.types[name]; exists {
		return nil, fmt.Errorf("type %s already defined", name)
	}
	p := Any
	if parent != "" {
		var ok bool
		if p, ok = r.types[parent]; !ok {
			return nil, fmt.Errorf("unknown parent type %s", parent)
		}
	}
	t := Define(name, p)
	r.types[name] = t
	return t, nil
}

// Lookup finds a nominal type by name.
func (r *Registry) Lookup(name string) (*Nominal, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Parse parses a type expression such as "Int", "List[Str]" or "Map[T]".
// Names for which isCapture returns true parse as capture references; a
// leading "::" also makes a capture reference. isCapture may be nil.
func (r *Registry) Parse(s string, isCapture func(string) bool) (Type, error) {
	p := typeParser{s, 0, r, isCapture}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src       string
	pos       int
	reg       *Registry
	isCapture func(string) bool
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("bad type %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) parse() (Type, error) {
	p.skipSpace()
	explicitCapture := strings.HasPrefix(p.src[p.pos:], "::")
	if explicitCapture {
		p.pos += 2
	}
	start := p.pos
	for p.pos < len(p.src) && isNameRune(rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return nil, p.errorf("missing type name")
	}
	if explicitCapture || (p.isCapture != nil && p.isCapture(name)) {
		return CaptureRef(name), nil
	}
	base, ok := p.reg.Lookup(name)
	if !ok {
		return nil, p.errorf("unknown type %s", name)
	}
	p.skipSpace()
	if p.pos == len(p.src) || p.src[p.pos] != '[' {
		return base, nil
	}
	p.pos++
	var args []Type
	for {
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.pos == len(p.src) {
			return nil, p.errorf("unterminated type arguments")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return &Param{base, args}, nil
		default:
			return nil, p.errorf("unexpected %q", p.src[p.pos])
		}
	}
}

func isNameRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
