// Package strutil provides the naming rules shared by the schema, parser and
// SQL generation packages.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// -----------------------------------------------------------------------------
// Source field naming
// -----------------------------------------------------------------------------

// SourceField converts a snake_case column name to the camelCase key used in
// the SDE JSONL files. A trailing "_id" becomes "ID".
// Examples: group_id -> groupID, icon_file -> iconFile, base_price -> basePrice
func SourceField(column string) string {
	if prefix, ok := strings.CutSuffix(column, "_id"); ok {
		return camel(prefix) + "ID"
	}
	return camel(column)
}

// camel removes underscores and upper-cases the letter following each one.
// Other characters keep their case.
func camel(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	upperNext := false
	for _, r := range s {
		switch {
		case r == '_':
			upperNext = true
		case upperNext:
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// SQL naming
// -----------------------------------------------------------------------------

// IndexName returns the index name for a table and columns.
// Example: IndexName("types", "group_id") -> "idx_types_group_id"
func IndexName(table string, cols ...string) string {
	parts := append([]string{"idx", table}, cols...)
	return strings.Join(parts, "_")
}

// QuoteSQL quotes an identifier with double quotes, escaping embedded quotes.
func QuoteSQL(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// SplitList splits a comma separated flag value, trimming blanks and
// dropping empty entries.
func SplitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
