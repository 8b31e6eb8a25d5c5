// Package schema describes the relational shape of every SDE table: its
// columns, foreign keys, indexes and, for junction tables, how rows are
// pulled out of a parent record's nested arrays.
package schema

import (
	"github.com/hlop3z/sdelite/internal/strutil"
)

// ColumnType is the logical type of a column.
type ColumnType int

const (
	Integer ColumnType = iota
	Real
	Text
	Boolean
	// Localized expands to one TEXT column per language.
	Localized
	// JSON stores a raw JSON subtree as text.
	JSON
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Text:
		return "text"
	case Boolean:
		return "boolean"
	case Localized:
		return "localized"
	case JSON:
		return "json"
	}
	return "unknown"
}

// MarshalText renders the type by name for YAML and JSON exports.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Languages lists the translations carried by Localized columns, in column order.
var Languages = []string{"en", "de", "es", "fr", "ja", "ko", "ru", "zh"}

// LocalizedName returns the physical column for one language of a Localized column.
func LocalizedName(column, lang string) string {
	return column + "_" + lang
}

// Column is a single logical column.
type Column struct {
	Name      string     `yaml:"name" json:"name"`
	Type      ColumnType `yaml:"type" json:"type"`
	Nullable  bool       `yaml:"nullable" json:"nullable"`
	JSONField string     `yaml:"json_field,omitempty" json:"json_field,omitempty"`
}

// Col returns a nullable column.
func Col(name string, typ ColumnType) Column {
	return Column{Name: name, Type: typ, Nullable: true}
}

// Required returns a NOT NULL column.
func Required(name string, typ ColumnType) Column {
	return Column{Name: name, Type: typ}
}

// From returns a copy of c read from an explicit source field.
func (c Column) From(field string) Column {
	c.JSONField = field
	return c
}

// SourceField is the JSON key the column is read from. An explicit override
// wins; "id" reads "_key"; anything else follows strutil.SourceField.
func (c Column) SourceField() string {
	switch {
	case c.JSONField != "":
		return c.JSONField
	case c.Name == "id":
		return "_key"
	}
	return strutil.SourceField(c.Name)
}

// ForeignKey declares that Column references RefTable.RefColumn.
type ForeignKey struct {
	Column    string `yaml:"column" json:"column"`
	RefTable  string `yaml:"references" json:"references"`
	RefColumn string `yaml:"references_column" json:"references_column"`
}

// FK returns a foreign key referencing table(id).
func FK(column, table string) ForeignKey {
	return ForeignKey{Column: column, RefTable: table, RefColumn: "id"}
}

// Index is an explicitly declared index.
type Index struct {
	Columns []string `yaml:"columns" json:"columns"`
	Unique  bool     `yaml:"unique,omitempty" json:"unique,omitempty"`
}

// Table is the full description of one output table.
type Table struct {
	Name        string       `yaml:"name" json:"name"`
	SourceFile  string       `yaml:"source_file" json:"source_file"`
	Columns     []Column     `yaml:"columns" json:"columns"`
	ForeignKeys []ForeignKey `yaml:"foreign_keys,omitempty" json:"foreign_keys,omitempty"`
	Indexes     []Index      `yaml:"indexes,omitempty" json:"indexes,omitempty"`
	ChildTables []string     `yaml:"child_tables,omitempty" json:"child_tables,omitempty"`
	ArraySource *ArraySource `yaml:"array_source,omitempty" json:"array_source,omitempty"`
}

// ID implements the dependency node contract used by the resolver.
func (t *Table) ID() string { return t.Name }

// IsJunction reports whether rows come from a parent record's nested arrays.
func (t *Table) IsJunction() bool { return t.ArraySource != nil }

// Dependencies returns the distinct tables this table references, in
// declaration order, excluding self-references.
func (t *Table) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool, len(t.ForeignKeys))
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == t.Name || seen[fk.RefTable] {
			continue
		}
		seen[fk.RefTable] = true
		deps = append(deps, fk.RefTable)
	}
	return deps
}

// References reports whether any foreign key points at table.
func (t *Table) References(table string) bool {
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == table {
			return true
		}
	}
	return false
}

// Column returns the named logical column.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PhysicalColumns lists the stored column names, with Localized columns
// expanded in Languages order.
func (t *Table) PhysicalColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Type != Localized {
			cols = append(cols, c.Name)
			continue
		}
		for _, lang := range Languages {
			cols = append(cols, LocalizedName(c.Name, lang))
		}
	}
	return cols
}
