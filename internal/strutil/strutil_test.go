package strutil

import (
	"reflect"
	"testing"
)

// -----------------------------------------------------------------------------
// SourceField Tests
// -----------------------------------------------------------------------------

func TestSourceField(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"name", "name"},
		{"group_id", "groupID"},
		{"category_id", "categoryID"},
		{"market_group_id", "marketGroupID"},
		{"icon_file", "iconFile"},
		{"base_price", "basePrice"},
		{"sof_faction_name", "sofFactionName"},
		{"position_x", "positionX"},
		{"max_production_limit", "maxProductionLimit"},
		{"id", "id"},
		{"_id", "ID"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SourceField(tt.input); got != tt.want {
				t.Errorf("SourceField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// SQL Naming Tests
// -----------------------------------------------------------------------------

func TestIndexName(t *testing.T) {
	tests := []struct {
		table string
		cols  []string
		want  string
	}{
		{"types", []string{"group_id"}, "idx_types_group_id"},
		{"types", []string{"name_en"}, "idx_types_name_en"},
		{"type_materials", []string{"composite"}, "idx_type_materials_composite"},
		{"t", nil, "idx_t"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := IndexName(tt.table, tt.cols...); got != tt.want {
				t.Errorf("IndexName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteSQL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"types", `"types"`},
		{`we"ird`, `"we""ird"`},
		{"", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QuoteSQL(tt.input); got != tt.want {
				t.Errorf("QuoteSQL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Formatting Tests
// -----------------------------------------------------------------------------

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty", nil, nil},
		{"single", []string{"types"}, []string{"types"}},
		{"comma separated", []string{"types, groups ,categories"}, []string{"types", "groups", "categories"}},
		{"repeated flags", []string{"types", "groups"}, []string{"types", "groups"}},
		{"blank entries", []string{",types,,"}, []string{"types"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.input...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Errorf("Truncate() = %q, want %q", got, "abc...")
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Errorf("Truncate() = %q, want %q", got, "abc")
	}
	if got := Truncate("日本語テキスト", 2); got != "日本..." {
		t.Errorf("Truncate() = %q, want %q", got, "日本...")
	}
}

func TestIndent(t *testing.T) {
	if got := Indent("a\n\nb", 2); got != "  a\n\n  b" {
		t.Errorf("Indent() = %q", got)
	}
}
