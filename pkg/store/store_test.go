package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.elv.sh/sigbind/pkg/testutil"
)

const pairDecl = `signatures:
  pair:
    params:
      - {name: "$x", captures: [T]}
      - {name: "$y", type: T}
`

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTemp(t)
	rev, err := s.Put("pair", pairDecl)
	if err != nil {
		t.Fatal(err)
	}
	if rev != 1 {
		t.Errorf("got revision %d, want 1", rev)
	}
	code, err := s.Get("pair")
	if err != nil || code != pairDecl {
		t.Errorf("Get -> %q, %v", code, err)
	}
	f, err := s.Load("pair")
	if err != nil {
		t.Fatal(err)
	}
	if sg, ok := f.Signature("pair"); !ok || sg.String() != ":(::T $x, T $y)" {
		t.Errorf("loaded signature %v", sg)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openTemp(t)
	for _, name := range []string{"b", "a", "b"} {
		if _, err := s.Put(name, pairDecl); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Entry{{"a", 2}, {"b", 3}}, entries); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrNoDecl) {
		t.Errorf("Get after Delete -> %v, want ErrNoDecl", err)
	}
	if err := s.Delete("a"); !errors.Is(err, ErrNoDecl) {
		t.Errorf("second Delete -> %v, want ErrNoDecl", err)
	}
}

func TestStore_PutRejectsInvalid(t *testing.T) {
	s := openTemp(t)
	bad := testutil.Dedent(`
		signatures:
		  bad: {params: [{name: "$x"}, {name: "$x"}]}
		`)
	if _, err := s.Put("bad", bad); err == nil {
		t.Errorf("Put accepted a malformed signature")
	}
	if _, err := s.Get("bad"); !errors.Is(err, ErrNoDecl) {
		t.Errorf("malformed declaration stored")
	}
}

func TestStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Put("pair", pairDecl)
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if code, err := s.Get("pair"); err != nil || code != pairDecl {
		t.Errorf("after reopening: %q, %v", code, err)
	}
}
