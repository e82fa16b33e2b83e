package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes a file under a fresh temporary directory and returns its
// path. A leading newline and the indentation of the first non-empty line
// are stripped from every line of content, so that declarations can be
// written as indented raw strings.
func WriteFile(t TempDirer, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(Dedent(content)), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Dedent removes a leading newline and the indentation of the first line
// from every line of text.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	first := text
	if i := strings.IndexByte(text, '\n'); i != -1 {
		first = text[:i]
	}
	margin := first[:len(first)-len(strings.TrimLeft(first, " \t"))]
	if margin == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}
