package sig

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/tt"
	"src.elv.sh/sigbind/pkg/types"
)

func newErr(specs ...ParamSpec) error {
	_, err := New(specs...)
	return err
}

func TestNew_Malformed(t *testing.T) {
	tt.Test(t, tt.Fn("New", newErr), tt.Table{
		// Alias collisions.
		tt.Args(
			ParamSpec{Name: "$a", Named: true, Aliases: []string{"x"}},
			ParamSpec{Name: "$b", Named: true, Aliases: []string{"x"}},
		).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(
			ParamSpec{Name: "$x", Named: true},
			ParamSpec{Name: "$y", Named: true, Aliases: []string{"x"}},
		).Rets(tt.ErrorIs(ErrMalformed)),
		// Capture-all rules.
		tt.Args(ParamSpec{Name: "|a"}, ParamSpec{Name: "|b"}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "|c"}, ParamSpec{Name: "$x"}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "|c", Trait: TraitRw}).Rets(tt.ErrorIs(ErrMalformed)),
		// Invocant rules.
		tt.Args(ParamSpec{Name: "$x"}, ParamSpec{Name: "$self", Invocant: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$self", Invocant: true, Named: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$self", Invocant: true, Optional: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		// Out-of-range enum values.
		tt.Args(ParamSpec{Name: "$x", Sigil: Sigil(99)}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$x", Trait: TraitRaw + 1}).Rets(tt.ErrorIs(ErrMalformed)),
		// Raw and rw.
		tt.Args(ParamSpec{Name: `\r`, Trait: TraitRw}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$x", Trait: TraitRw, Optional: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$x", Trait: TraitRw, Default: Value(1)}).
			Rets(tt.ErrorIs(ErrMalformed)),
		// Aliases only on named parameters.
		tt.Args(ParamSpec{Name: "$x", Aliases: []string{"y"}}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Sigil: SigilScalar, Named: true}).Rets(tt.ErrorIs(ErrMalformed)),
		// Ordering of positionals.
		tt.Args(ParamSpec{Name: "$x", Optional: true}, ParamSpec{Name: "$y"}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "@r", Slurpy: true}, ParamSpec{Name: "$y", Optional: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "@r", Slurpy: true}, ParamSpec{Name: "@s", Slurpy: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "%r", Slurpy: true}, ParamSpec{Name: "%s", Slurpy: true}).
			Rets(tt.ErrorIs(ErrMalformed)),
		// Slurpy sigils.
		tt.Args(ParamSpec{Name: "$r", Slurpy: true}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "@r", Slurpy: true, Default: Value(nil)}).
			Rets(tt.ErrorIs(ErrMalformed)),
		// Names.
		tt.Args(ParamSpec{Name: "x"}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$!"}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$1x"}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$x"}, ParamSpec{Name: "$x"}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "%h", Sigil: SigilPositional}).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$x", BindFailover: true}).Rets(tt.ErrorIs(ErrMalformed)),
		// Type captures.
		tt.Args(
			ParamSpec{Name: "$x", Type: types.CaptureRef("T")},
			ParamSpec{Name: "$y", Captures: []string{"T"}},
		).Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(ParamSpec{Name: "$x", Type: types.CaptureRef("T"), Captures: []string{"T"}}).
			Rets(tt.ErrorIs(ErrMalformed)),
		tt.Args(
			ParamSpec{Name: "$x", Captures: []string{"T"}},
			ParamSpec{Name: "$y", Captures: []string{"T"}},
		).Rets(tt.ErrorIs(ErrMalformed)),

		// Valid signatures.
		tt.Args(
			ParamSpec{Name: "$self", Invocant: true},
			ParamSpec{Name: "$x", Captures: []string{"T"}},
			ParamSpec{Name: "$y", Type: types.CaptureRef("T")},
			ParamSpec{Name: "@rest", Slurpy: true},
			ParamSpec{Name: "$n", Named: true, Aliases: []string{"n", "num"}},
			ParamSpec{Name: "%opts", Slurpy: true},
		).Rets(tt.ErrorIs(nil)),
		tt.Args(ParamSpec{Name: "$x"}, ParamSpec{Name: "|rest"}).Rets(tt.ErrorIs(nil)),
		tt.Args(ParamSpec{Name: "$x", Optional: true}, ParamSpec{Name: "$n", Named: true}).
			Rets(tt.ErrorIs(nil)),
	})
}

func TestMalformedError(t *testing.T) {
	err := newErr(
		ParamSpec{Name: "$a", Named: true, Aliases: []string{"x"}},
		ParamSpec{Name: "$b", Named: true, Aliases: []string{"x"}, Range: diag.Ranging{From: 4, To: 6}},
	)
	var me *MalformedError
	if !errors.As(err, &me) {
		t.Fatalf("error %v is not *MalformedError", err)
	}
	want := &MalformedError{
		Reason: "named alias x is already used by $a",
		Param:  "$b", Index: 1, Range: diag.Ranging{From: 4, To: 6}}
	if diff := cmp.Diff(want, me); diff != "" {
		t.Errorf("error (-want +got):\n%s", diff)
	}
	wantMsg := "malformed signature: parameter $b: named alias x is already used by $a"
	if me.Error() != wantMsg {
		t.Errorf("Error() -> %q, want %q", me.Error(), wantMsg)
	}

	d := me.Diag(diag.Source{Name: "a.yaml", Code: "a: $b\n"})
	if d.Type != "compilation error" || d.Context.Range() != me.Range {
		t.Errorf("Diag -> %+v", d)
	}
}

func TestSignatureQueries(t *testing.T) {
	s := MustNew(
		ParamSpec{Name: "$self", Invocant: true},
		ParamSpec{Name: "$a", Type: types.Int},
		ParamSpec{Name: "$b", Optional: true},
		ParamSpec{Name: "$n", Named: true},
		ParamSpec{Name: "@rest", Slurpy: true},
		ParamSpec{Name: "%opts", Slurpy: true},
	)
	if s.Len() != 6 {
		t.Errorf("Len() -> %d, want 6", s.Len())
	}
	if s.Arity() != 2 {
		t.Errorf("Arity() -> %d, want 2", s.Arity())
	}
	if s.Count() != -1 {
		t.Errorf("Count() -> %d, want -1", s.Count())
	}
	if !s.HasSlurpy() {
		t.Errorf("HasSlurpy() -> false")
	}
	if s.InvocantIndex() != 0 || s.Invocant().Name() != "$self" {
		t.Errorf("wrong invocant")
	}
	if named := s.Named(); len(named) != 2 || named[0].Name() != "$n" || named[1].Name() != "%opts" {
		t.Errorf("Named() -> %v", named)
	}
	if p, ok := s.Lookup("$b"); !ok || p.Index() != 2 {
		t.Errorf("Lookup($b) -> %v, %v", p, ok)
	}

	params := s.Params()
	params[0] = nil
	if s.Param(0) == nil {
		t.Errorf("Params() exposes internal storage")
	}

	plain := MustNew(ParamSpec{Name: "$x"}, ParamSpec{Name: "$y", Optional: true})
	if plain.Count() != 2 || plain.Arity() != 1 || plain.HasSlurpy() || plain.Invocant() != nil {
		t.Errorf("wrong aggregate views for %s", plain)
	}
	if capt := MustNew(ParamSpec{Name: "$x"}, ParamSpec{Name: "|c"}); capt.Count() != -1 || !capt.HasSlurpy() {
		t.Errorf("capture-all does not make the signature unbounded")
	}
}

func TestFreeCaptures(t *testing.T) {
	inner := MustNew(ParamSpec{Name: "$a", Type: types.CaptureRef("T")})
	if diff := cmp.Diff([]string{"T"}, inner.FreeCaptures()); diff != "" {
		t.Errorf("FreeCaptures (-want +got):\n%s", diff)
	}
	outer, err := New(ParamSpec{Name: "$p", Captures: []string{"T"}, Sub: inner})
	if err != nil {
		t.Fatal(err)
	}
	if len(outer.FreeCaptures()) != 0 {
		t.Errorf("outer.FreeCaptures() -> %v, want none", outer.FreeCaptures())
	}
	_, err = New(
		ParamSpec{Name: "$p", Sub: inner},
		ParamSpec{Name: "$q", Captures: []string{"T"}},
	)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("forward reference from sub-signature -> %v, want ErrMalformed", err)
	}
}

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("String", (*Signature).String), tt.Table{
		tt.Args(MustNew()).Rets(":()"),
		tt.Args(MustNew(
			ParamSpec{Name: "$x"},
			ParamSpec{Name: "@y", Optional: true},
			ParamSpec{Name: "%h", Slurpy: true},
		)).Rets(":($x, @y?, *%h)"),
		tt.Args(MustNew(
			ParamSpec{Name: "$self", Invocant: true},
			ParamSpec{Type: types.Int, Name: "$x", Captures: []string{"T"}, Trait: TraitCopy},
			ParamSpec{Name: "$y", Type: types.ListOf(types.CaptureRef("T")), Default: Value(nil)},
		)).Rets(":($self: Int ::T $x is copy, List[T] $y = {...})"),
		tt.Args(MustNew(
			ParamSpec{Name: "$n", Named: true, Aliases: []string{"num", "n"}},
			ParamSpec{Name: "$v", Named: true, Optional: true},
			ParamSpec{Name: "|c"},
		)).Rets(":(:num(:n(:$n))!, :$v, |c)"),
		tt.Args(MustNew(
			ParamSpec{Name: "$p", Sub: MustNew(ParamSpec{Name: "$a"}, ParamSpec{Name: "$b"})},
			ParamSpec{Name: `\r`, Where: []Constraint{{Desc: "{ $_ > 0 }"}}},
		)).Rets(`:($p ($a, $b), \r where { $_ > 0 })`),
		tt.Args(MustNew(ParamSpec{Name: "$x"}).WithReturns(types.Str)).Rets(":($x --> Str)"),
	})
}
