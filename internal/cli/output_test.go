package cli

import (
	"strings"
	"testing"
)

func TestTable_AddRow(t *testing.T) {
	table := NewTable("TABLE", "DEPENDS ON")
	table.AddRow("types", "groups")
	table.AddRow("type_dogma_attributes")
	table.AddRow("a", "b", "dropped")

	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if got := table.widths()[0]; got != len("type_dogma_attributes") {
		t.Errorf("widths()[0] = %d, want %d", got, len("type_dogma_attributes"))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("short row not padded: %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("long row not trimmed: %q", table.rows[2])
	}
}

func TestTable_String(t *testing.T) {
	table := NewTable("NAME", "DEPS")
	table.AddRow("types", "groups")
	table.AddRow("categories", "")

	want := "NAME        DEPS\n" +
		"──────────  ──────\n" +
		"types       groups\n" +
		"categories  \n"
	if got := table.String(); got != want {
		t.Errorf("String() =\n%q\nwant:\n%q", got, want)
	}
}

func TestTable_Empty(t *testing.T) {
	if got := NewTable().String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	out := NewTable("NAME").String()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("header-only table = %q", out)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0 tables"},
		{1, "1 table"},
		{52, "52 tables"},
		{48213, "48,213 tables"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.count, "table", "tables"); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestFormatKeyValue(t *testing.T) {
	if got := FormatKeyValue("build", "3064089"); got != "build: 3064089" {
		t.Errorf("FormatKeyValue() = %q", got)
	}
}
