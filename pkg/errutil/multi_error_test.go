package errutil

import (
	"errors"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if err := Multi(); err != nil {
		t.Errorf("Multi() -> %v, want nil", err)
	}
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) -> %v, want nil", err)
	}
	if err := Multi(nil, err1); err != err1 {
		t.Errorf("Multi(nil, err1) -> %v, want err1", err)
	}

	err := Multi(Multi(err1, err2), err3)
	wantMsg := "multiple errors: error 1; error 2; error 3"
	if err.Error() != wantMsg {
		t.Errorf("Error() -> %q, want %q", err.Error(), wantMsg)
	}
	if n := len(Errors(err)); n != 3 {
		t.Errorf("len(Errors(err)) -> %d, want 3", n)
	}
	if !errors.Is(err, err2) {
		t.Errorf("errors.Is(err, err2) -> false")
	}
}

func TestErrors(t *testing.T) {
	if Errors(nil) != nil {
		t.Errorf("Errors(nil) -> non-nil")
	}
	if got := Errors(err1); len(got) != 1 || got[0] != err1 {
		t.Errorf("Errors(err1) -> %v", got)
	}
}
