package decl

import (
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/vals"
)

type whereDoc struct {
	Gt  *float64  `yaml:"gt"`
	Lt  *float64  `yaml:"lt"`
	Ne  yaml.Node `yaml:"ne"`
	Len *int      `yaml:"len"`
}

func (w *whereDoc) constraints() ([]sig.Constraint, error) {
	if w == nil {
		return nil, nil
	}
	var cs []sig.Constraint
	if w.Gt != nil {
		n := *w.Gt
		cs = append(cs, sig.Constraint{
			Desc: "{ $_ > " + formatNum(n) + " }",
			Test: func(v any) bool { f, ok := toFloat(v); return ok && f > n },
		})
	}
	if w.Lt != nil {
		n := *w.Lt
		cs = append(cs, sig.Constraint{
			Desc: "{ $_ < " + formatNum(n) + " }",
			Test: func(v any) bool { f, ok := toFloat(v); return ok && f < n },
		})
	}
	if w.Ne.Kind != 0 {
		var x any
		if err := w.Ne.Decode(&x); err != nil {
			return nil, err
		}
		cs = append(cs, sig.Constraint{
			Desc: "{ $_ != " + vals.Repr(x) + " }",
			Test: func(v any) bool { return !reflect.DeepEqual(v, x) },
		})
	}
	if w.Len != nil {
		n := *w.Len
		cs = append(cs, sig.Constraint{
			Desc: "{ $_.elems == " + strconv.Itoa(n) + " }",
			Test: func(v any) bool { return vals.Len(v) == n },
		})
	}
	return cs, nil
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
