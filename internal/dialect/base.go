package dialect

import (
	"slices"
	"strings"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/strutil"
)

// -----------------------------------------------------------------------------
// Shared helpers for dialect implementations
// -----------------------------------------------------------------------------

// IndexDef is one index generated for a table.
type IndexDef struct {
	Name    string
	Columns []string
	Unique  bool
}

// filterColumns are the exact names of low-cardinality columns queries filter on.
var filterColumns = []string{"published", "deleted", "activity", "security_status"}

// filterPrefixes mark boolean flag columns that get an index of their own.
var filterPrefixes = []string{"is_", "visible_"}

// PlanIndexes derives the indexes for t, in creation order:
//
//  1. one per foreign key column
//  2. the English column of a Localized name or *_name column
//  3. a composite unique index on junction tables with exactly two foreign keys
//  4. filter columns not already covered by a foreign key
//  5. any indexes the table declares explicitly
//
// Duplicate names are dropped, so each index appears once.
func PlanIndexes(t *schema.Table) []IndexDef {
	var out []IndexDef
	seen := make(map[string]bool)
	add := func(def IndexDef) {
		if seen[def.Name] {
			return
		}
		seen[def.Name] = true
		out = append(out, def)
	}

	fkCols := make(map[string]bool, len(t.ForeignKeys))
	for _, fk := range t.ForeignKeys {
		fkCols[fk.Column] = true
		add(IndexDef{Name: strutil.IndexName(t.Name, fk.Column), Columns: []string{fk.Column}})
	}

	for _, c := range t.Columns {
		if c.Type != schema.Localized {
			continue
		}
		if c.Name == "name" || strings.HasSuffix(c.Name, "_name") {
			col := schema.LocalizedName(c.Name, "en")
			add(IndexDef{Name: strutil.IndexName(t.Name, col), Columns: []string{col}})
		}
	}

	if t.IsJunction() && len(t.ForeignKeys) == 2 {
		cols := []string{t.ForeignKeys[0].Column}
		if key := discriminator(t.ArraySource); key != "" && !fkCols[key] {
			cols = append(cols, key)
		}
		cols = append(cols, t.ForeignKeys[1].Column)
		add(IndexDef{Name: strutil.IndexName(t.Name, "composite"), Columns: cols, Unique: true})
	}

	for _, c := range t.Columns {
		if c.Type == schema.Localized || fkCols[c.Name] || !isFilterColumn(c.Name) {
			continue
		}
		add(IndexDef{Name: strutil.IndexName(t.Name, c.Name), Columns: []string{c.Name}})
	}

	for _, idx := range t.Indexes {
		add(IndexDef{Name: strutil.IndexName(t.Name, idx.Columns...), Columns: idx.Columns, Unique: idx.Unique})
	}
	return out
}

// discriminator is the strategy column that separates otherwise identical
// (parent, child) pairs within one record.
func discriminator(src *schema.ArraySource) string {
	switch src.Strategy {
	case schema.BlueprintActivityStrategy:
		return src.ActivityColumn
	case schema.NestedKeyValueStrategy, schema.DoubleNestedStrategy:
		return src.KeyColumn
	}
	return ""
}

func isFilterColumn(name string) bool {
	if slices.Contains(filterColumns, name) {
		return true
	}
	for _, p := range filterPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// buildCreateTableSQL generates CREATE TABLE for t. The id column becomes the
// primary key; foreign keys whose target is not planned are omitted unless
// the dialect tolerates dangling references.
func buildCreateTableSQL(d Dialect, t *schema.Table, planned func(string) bool) string {
	var defs []string
	for _, c := range t.Columns {
		if c.Type == schema.Localized {
			for _, lang := range schema.Languages {
				defs = append(defs, d.Builder().ColumnDef(schema.LocalizedName(c.Name, lang), d.ColumnType(schema.Text), true, false))
			}
			continue
		}
		defs = append(defs, d.Builder().ColumnDef(c.Name, d.ColumnType(c.Type), c.Nullable, c.Name == "id"))
	}

	for _, fk := range t.ForeignKeys {
		if planned != nil && !d.AllowsDanglingForeignKeys() && fk.RefTable != t.Name && !planned(fk.RefTable) {
			continue
		}
		defs = append(defs, d.Builder().ForeignKey(fk.Column, fk.RefTable, fk.RefColumn))
	}
	return d.Builder().CreateTable(t.Name, defs)
}

// buildCreateIndexSQL renders PlanIndexes(t) as CREATE INDEX statements.
func buildCreateIndexSQL(d Dialect, t *schema.Table) []string {
	defs := PlanIndexes(t)
	stmts := make([]string, 0, len(defs))
	for _, def := range defs {
		stmts = append(stmts, d.Builder().CreateIndex(def.Name, t.Name, def.Columns, def.Unique))
	}
	return stmts
}

func buildInsertSQL(d Dialect, t *schema.Table, rows int) string {
	return d.Builder().Insert(t.Name, t.PhysicalColumns(), rows)
}
