package diag

import (
	"errors"
	"testing"

	"src.elv.sh/sigbind/pkg/testutil"
)

func setMarkers(t *testing.T) {
	testutil.Set(t, &culpritStart, "<")
	testutil.Set(t, &culpritEnd, ">")
	testutil.Set(t, &messageStart, "{")
	testutil.Set(t, &messageEnd, "}")
}

var errCause = errors.New("cause")

func TestError(t *testing.T) {
	setMarkers(t)

	//                                     0123456789012
	err := &Error{
		Type:    "compilation error",
		Message: "duplicate CATCH phaser",
		Context: *NewContext("[test]", "ok\nCATCH CATCH", Ranging{9, 14}),
		Cause:   errCause,
	}

	wantErrorString := "compilation error: [test]:2:7: duplicate CATCH phaser"
	if got := err.Error(); got != wantErrorString {
		t.Errorf("Error() -> %q, want %q", got, wantErrorString)
	}
	if got := err.Range(); got != (Ranging{9, 14}) {
		t.Errorf("Range() -> %v, want {9 14}", got)
	}
	if !errors.Is(err, errCause) {
		t.Errorf("errors.Is(err, cause) -> false")
	}

	wantShow := "Compilation error: {duplicate CATCH phaser}\n" +
		"  [test]:2:7: CATCH <CATCH>"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
}
