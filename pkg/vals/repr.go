package vals

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents a value, preferably a literal
	// that reads back as an equal value.
	Repr() string
}

// Repr returns the representation for a value, used when describing actual
// arguments in bind errors. Strings are quoted, lists look like [a b], maps
// like [&k=v]. Values satisfying Reprer use their own Repr; other values are
// shown as "<kind>".
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "$nil"
	case bool:
		if v {
			return "$true"
		}
		return "$false"
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Reprer:
		return v.Repr()
	case []any:
		b := newReprBuilder("[", "]")
		for _, e := range v {
			b.writeElem(Repr(e))
		}
		return b.String()
	case map[string]any:
		if len(v) == 0 {
			return "[&]"
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b := newReprBuilder("[", "]")
		for _, k := range keys {
			b.writeElem("&" + k + "=" + Repr(v[k]))
		}
		return b.String()
	}
	switch Kind(v) {
	case "int", "num":
		return fmt.Sprint(v)
	}
	return "<" + Kind(v) + ">"
}

type reprBuilder struct {
	sb    strings.Builder
	close string
	n     int
}

func newReprBuilder(open, close string) *reprBuilder {
	b := &reprBuilder{close: close}
	b.sb.WriteString(open)
	return b
}

func (b *reprBuilder) writeElem(s string) {
	if b.n > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(s)
	b.n++
}

func (b *reprBuilder) String() string {
	return b.sb.String() + b.close
}
