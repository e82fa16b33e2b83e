package decl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.elv.sh/sigbind/pkg/diag"
	"src.elv.sh/sigbind/pkg/errutil"
	"src.elv.sh/sigbind/pkg/phaser"
	"src.elv.sh/sigbind/pkg/sig"
	"src.elv.sh/sigbind/pkg/testutil"
	"src.elv.sh/sigbind/pkg/vars"
)

var sample = testutil.Dedent(`
	types:
	  - {name: Point, parent: Any}
	signatures:
	  pair:
	    params:
	      - {name: "$x", captures: [T]}
	      - {name: "$y", type: T}
	  method:
	    params:
	      - {name: "$self", invocant: true, type: Point}
	      - {name: "@xs", type: Int, trait: copy}
	      - {name: "$n", named: true, aliases: [num, n], default: 1}
	      - {name: "%rest", slurpy: true}
	    returns: Str
	  nested:
	    params:
	      - name: "$p"
	        sub:
	          - {name: "$a", where: {gt: 0}}
	          - {name: "$b", optional: true}
	      - {name: "|c"}
	calls:
	  - {signature: pair, positional: [4, 5]}
	  - {dispatch: [pair, nested], positional: [[1, 2]], named: {k: v}}
	  - {signature: pair, positional: [1, 2], containers: [1]}
	blocks:
	  - name: outer
	    phasers: [{kind: CATCH}, {kind: LEAVE}]
	  - name: inner
	    phasers:
	      - {kind: CONTROL}
	      - {kind: CONTROL}
	`)

func loadSample(t *testing.T) *File {
	t.Helper()
	f, err := Load(diag.Source{Name: "sample.yaml", Code: sample})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLoad_Signatures(t *testing.T) {
	f := loadSample(t)
	var got []string
	for _, s := range f.Signatures {
		got = append(got, s.Name+" "+s.Sig.String())
	}
	want := []string{
		"pair :(::T $x, T $y)",
		"method :(Point $self: Int @xs is copy, :num(:n(:$n)) = {...}, *%rest --> Str)",
		"nested :($p ($a where { $_ > 0 }, $b?), |c)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("signatures (-want +got):\n%s", diff)
	}

	s, _ := f.Signature("nested")
	a := s.Param(0).SubSignature().Param(0)
	cons := a.Constraints()
	if len(cons) != 1 || !cons[0].Test(1) || cons[0].Test(0) || cons[0].Test("x") {
		t.Errorf("where constraint of $a wrong: %v", cons)
	}

	n, _ := f.Signatures[1].Sig.Lookup("$n")
	if v, err := n.Default()(); v != 1 || err != nil {
		t.Errorf("default of $n = %v, %v", v, err)
	}
	if _, ok := f.Types.Lookup("Point"); !ok {
		t.Errorf("type Point not defined")
	}
}

func TestLoad_Ranges(t *testing.T) {
	f := loadSample(t)
	text := func(r diag.Ranging) string { return sample[r.From:r.To] }

	if got := text(f.Signatures[0].Ranging); got != "pair" {
		t.Errorf("signature range covers %q", got)
	}
	if got := text(f.Signatures[0].Sig.Param(1).Range()); got != `"$y"` {
		t.Errorf("parameter range covers %q", got)
	}
	if got := text(f.Blocks[1].Decls[1].Range); got != "CONTROL" {
		t.Errorf("phaser range covers %q", got)
	}
}

func TestLoad_CallsAndBlocks(t *testing.T) {
	f := loadSample(t)
	if len(f.Calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(f.Calls))
	}
	if diff := cmp.Diff([]string{"pair", "nested"}, f.Calls[1].Candidates); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"k": "v"}, f.Calls[1].Args.Named); diff != "" {
		t.Errorf("named args (-want +got):\n%s", diff)
	}
	if len(f.Candidates(f.Calls[1])) != 2 {
		t.Errorf("candidates not resolved")
	}
	if _, ok := f.Calls[2].Args.Positional[1].(*vars.Cell); !ok {
		t.Errorf("argument not passed in a container: %#v", f.Calls[2].Args.Positional[1])
	}

	if len(f.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(f.Blocks))
	}
	if err := phaser.Check(f.Blocks[0]); err != nil {
		t.Errorf("block outer: %v", err)
	}
	if err := phaser.Check(f.Blocks[1]); err == nil {
		t.Errorf("block inner: no error for duplicate CONTROL")
	}
}

func TestLoad_Errors(t *testing.T) {
	code := testutil.Dedent(`
		signatures:
		  bad:
		    params:
		      - {name: "$a", named: true, aliases: [x]}
		      - {name: "$b", named: true, aliases: [x]}
		  badtype:
		    params: [{name: "$x", type: Nope}]
		  ok:
		    params: [{name: "$x"}]
		calls:
		  - {signature: missing}
		  - {signature: bad}
		blocks:
		  - {name: b, phasers: [{kind: WHENEVER}]}
		`)
	f, err := Load(diag.Source{Name: "bad.yaml", Code: code})
	if f == nil {
		t.Fatalf("no file returned along with %v", err)
	}
	errs := errutil.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(errs), err)
	}
	if !errors.Is(errs[0], sig.ErrMalformed) {
		t.Errorf("error 0 is %v, want malformed signature", errs[0])
	}
	var me *sig.MalformedError
	if errors.As(errs[0], &me) && code[me.Range.From:me.Range.To] != `"$b"` {
		t.Errorf("malformed error range covers %q", code[me.Range.From:me.Range.To])
	}
	var want []string
	for _, e := range errs[1:] {
		var de *Error
		if !errors.As(e, &de) {
			t.Errorf("error %v is not *Error", e)
			continue
		}
		want = append(want, code[de.From:de.To])
	}
	if diff := cmp.Diff([]string{"Nope", "{signature: missing}", "WHENEVER"}, want); diff != "" {
		t.Errorf("error ranges (-want +got):\n%s", diff)
	}
	if len(f.Signatures) != 1 || len(f.Calls) != 1 {
		t.Errorf("got %d signatures and %d calls, want 1 and 1", len(f.Signatures), len(f.Calls))
	}
	if len(f.Candidates(f.Calls[0])) != 0 {
		t.Errorf("failed signature returned as a candidate")
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	if _, err := Load(diag.Source{Name: "x.yaml", Code: "signatures: [\n"}); err == nil {
		t.Errorf("no error for invalid YAML")
	}
}

func TestLoadFile(t *testing.T) {
	path := testutil.WriteFile(t, "a.yaml", `
		signatures:
		  one: {params: [{name: "$x"}]}
		`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Source.Name != path || len(f.Signatures) != 1 {
		t.Errorf("got %+v", f)
	}
	if _, err := LoadFile(path + ".missing"); err == nil {
		t.Errorf("no error for missing file")
	}
}
