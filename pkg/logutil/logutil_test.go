package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard); SetLevel("debug") })
	logger := GetLogger("[test] ")

	var buf bytes.Buffer
	SetOutput(&buf)
	logger.Info("hello")
	if !strings.Contains(buf.String(), "test\thello") {
		t.Errorf("output %q does not contain named entry", buf.String())
	}

	buf.Reset()
	if err := SetLevel("warn"); err != nil {
		t.Fatal(err)
	}
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info entry written at warn level: %q", buf.String())
	}
	if err := SetLevel("no-such-level"); err == nil {
		t.Errorf("SetLevel accepted a bad level")
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	GetLogger("[file] ").Warn("to file")
	SetOutputFile("")

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file content %q", data)
	}
}
