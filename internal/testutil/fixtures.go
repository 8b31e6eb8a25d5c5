package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir creates a temporary directory that is automatically cleaned up.
func TempDir(t testing.TB) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "sdelite-test-*")
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}

// WriteFile writes content to a file, creating parent directories as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent directories: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// WriteJSONL writes one record per line to dir/name and returns the path.
//
// Example:
//
//	testutil.WriteJSONL(t, dir, "races.jsonl",
//	    `{"_key": 1, "name": {"en": "Caldari"}}`,
//	    `{"_key": 2, "name": {"en": "Minmatar"}}`,
//	)
func WriteJSONL(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	WriteFile(t, path, content)
	return path
}
