package sys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsATTY(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "f"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsATTY(f) {
		t.Errorf("IsATTY(regular file) = true")
	}
	if IsATTY(nil) {
		t.Errorf("IsATTY(nil) = true")
	}
}
