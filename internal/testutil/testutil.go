package testutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/hlop3z/sdelite/internal/sderr"
)

var (
	runs       = regexp.MustCompile(`\s+`)
	punctSpace = regexp.MustCompile(`\s*([(),])\s*`)
)

// NormalizeSQL reduces a statement to a comparable shape: whitespace runs
// collapse, space around parentheses and commas is dropped, and keywords
// and identifiers are upper-cased. Quoting is kept.
func NormalizeSQL(sql string) string {
	sql = runs.ReplaceAllString(strings.TrimSpace(sql), " ")
	sql = punctSpace.ReplaceAllString(sql, "$1")
	return strings.ToUpper(sql)
}

// AssertSQL fails unless got and want have the same normalized shape.
func AssertSQL(t testing.TB, got, want string) {
	t.Helper()
	if g, w := NormalizeSQL(got), NormalizeSQL(want); g != w {
		t.Errorf("SQL mismatch:\ngot:  %s\nwant: %s\n\nraw:\n%s", g, w, got)
	}
}

// AssertSQLContains fails unless the normalized fragment occurs in sql.
func AssertSQLContains(t testing.TB, sql, fragment string) {
	t.Helper()
	if !strings.Contains(NormalizeSQL(sql), NormalizeSQL(fragment)) {
		t.Errorf("SQL does not contain %q:\n%s", fragment, sql)
	}
}

// AssertError fails unless err carries code.
func AssertError(t testing.TB, err error, code sderr.Code) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error %s, got nil", code)
		return
	}
	if got := sderr.GetCode(err); got != code {
		t.Errorf("expected error %s, got %s: %v", code, got, err)
	}
}

// Must stops the test on a setup error.
func Must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
