package sig

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sigil classifies how a parameter binds by default. It is defined for every
// parameter, including anonymous ones.
type Sigil uint8

// Possible values of Sigil.
const (
	// SigilScalar is "$": binds one item.
	SigilScalar Sigil = iota
	// SigilPositional is "@": binds a list.
	SigilPositional
	// SigilPositionalBindFailover is an "@" parameter that also accepts a
	// lazy sequence, reifying it into a list.
	SigilPositionalBindFailover
	// SigilAssociative is "%": binds a map.
	SigilAssociative
	// SigilCallable is "&": binds a callable.
	SigilCallable
	// SigilCaptureAll is "|": binds all remaining arguments as a capture.
	SigilCaptureAll
	// SigilRaw is "\": binds the argument without any container.
	SigilRaw
)

var sigilStrings = [...]string{
	SigilScalar:                 "$",
	SigilPositional:             "@",
	SigilPositionalBindFailover: "@",
	SigilAssociative:            "%",
	SigilCallable:               "&",
	SigilCaptureAll:             "|",
	SigilRaw:                    `\`,
}

var sigilNames = [...]string{
	SigilScalar:                 "Scalar",
	SigilPositional:             "Positional",
	SigilPositionalBindFailover: "PositionalBindFailover",
	SigilAssociative:            "Associative",
	SigilCallable:               "Callable",
	SigilCaptureAll:             "CaptureAll",
	SigilRaw:                    "Raw",
}

// String returns the sigil character.
func (s Sigil) String() string { return sigilStrings[s] }

// Name returns the name of the sigil class, like "Positional".
func (s Sigil) Name() string { return sigilNames[s] }

// ParseSigil parses a sigil class name as returned by Sigil.Name.
func ParseSigil(name string) (Sigil, bool) {
	for i, n := range sigilNames {
		if n == name {
			return Sigil(i), true
		}
	}
	return 0, false
}

func sigilOfChar(r rune) (Sigil, bool) {
	switch r {
	case '$':
		return SigilScalar, true
	case '@':
		return SigilPositional, true
	case '%':
		return SigilAssociative, true
	case '&':
		return SigilCallable, true
	case '|':
		return SigilCaptureAll, true
	case '\\':
		return SigilRaw, true
	}
	return 0, false
}

const twigilChars = "!.*?^:=~"

// parsedName is the result of splitting a declared parameter name.
type parsedName struct {
	sigil     Sigil
	hasSigil  bool
	twigil    string
	ident     string
	malformed string
}

// parseName splits a parameter name like "$!x" into sigil, twigil and
// identifier. A name consisting of a sigil only declares an anonymous
// parameter.
func parseName(name string) parsedName {
	if name == "" {
		return parsedName{}
	}
	r, size := utf8.DecodeRuneInString(name)
	sigil, ok := sigilOfChar(r)
	if !ok {
		return parsedName{malformed: "name " + name + " does not start with a sigil"}
	}
	p := parsedName{sigil: sigil, hasSigil: true}
	rest := name[size:]
	if rest != "" && strings.IndexByte(twigilChars, rest[0]) != -1 {
		p.twigil, rest = rest[:1], rest[1:]
		if rest == "" {
			p.malformed = "name " + name + " has a twigil but no identifier"
			return p
		}
	}
	if rest != "" && !isIdentifier(rest) {
		p.malformed = "name " + name + " has an invalid identifier"
		return p
	}
	p.ident = rest
	return p
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '\'' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return s != "" && s[len(s)-1] != '-' && s[len(s)-1] != '\''
}
