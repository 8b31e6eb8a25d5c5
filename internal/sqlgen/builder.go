// Package sqlgen renders the few statement shapes the converter issues:
// CREATE TABLE and CREATE INDEX for the catalog, DROP TABLE for replaced
// output, and the batched multi-row INSERT used during import.
package sqlgen

import (
	"strconv"
	"strings"
)

// Dialect selects the placeholder style. Identifiers are double quoted in
// both.
type Dialect int

const (
	// Postgres numbers placeholders ($1, $2, ...) across the whole statement.
	Postgres Dialect = iota
	// SQLite uses bare ? placeholders.
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	}
	return "unknown"
}

// Builder accumulates a single statement. The zero value is not usable;
// get one from New.
type Builder struct {
	dialect Dialect
	sb      strings.Builder
}

func New(d Dialect) *Builder {
	return &Builder{dialect: d}
}

func (b *Builder) Dialect() Dialect { return b.dialect }

// Write appends SQL text verbatim.
func (b *Builder) Write(parts ...string) *Builder {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
	return b
}

// Ident appends a quoted identifier.
func (b *Builder) Ident(name string) *Builder {
	b.sb.WriteString(QuoteIdent(name))
	return b
}

// Idents appends "(a, b, c)" with every name quoted.
func (b *Builder) Idents(names []string) *Builder {
	b.sb.WriteByte('(')
	b.sb.WriteString(Columns(names...))
	b.sb.WriteByte(')')
	return b
}

// Values appends rows tuples of cols placeholders each. Postgres numbering
// continues across tuples so the statement binds rows*cols arguments.
func (b *Builder) Values(rows, cols int) *Builder {
	b.sb.WriteString(" VALUES ")
	for r := range rows {
		if r > 0 {
			b.sb.WriteString(", ")
		}
		b.sb.WriteByte('(')
		b.sb.WriteString(PlaceholdersFrom(b.dialect, r*cols+1, cols))
		b.sb.WriteByte(')')
	}
	return b
}

func (b *Builder) String() string { return b.sb.String() }

// CreateTable renders a multi-line CREATE TABLE with one definition per line.
func (b *Builder) CreateTable(table string, defs []string) string {
	b.Write("CREATE TABLE ").Ident(table).Write(" (\n")
	for i, def := range defs {
		b.Write("    ", def)
		if i < len(defs)-1 {
			b.Write(",")
		}
		b.Write("\n")
	}
	return b.Write(")").String()
}

// ColumnDef renders `"name" TYPE [PRIMARY KEY] [NOT NULL]`. A primary key is
// always NOT NULL.
func (b *Builder) ColumnDef(name, typ string, nullable, primary bool) string {
	b.Ident(name).Write(" ", typ)
	if primary {
		b.Write(" PRIMARY KEY")
	}
	if primary || !nullable {
		b.Write(" NOT NULL")
	}
	return b.String()
}

// ForeignKey renders `FOREIGN KEY ("col") REFERENCES "table"("refCol")`.
func (b *Builder) ForeignKey(column, refTable, refColumn string) string {
	return b.Write("FOREIGN KEY ").Idents([]string{column}).
		Write(" REFERENCES ").Ident(refTable).Idents([]string{refColumn}).
		String()
}

// CreateIndex renders CREATE [UNIQUE] INDEX "name" ON "table" ("cols").
func (b *Builder) CreateIndex(name, table string, columns []string, unique bool) string {
	b.Write("CREATE ")
	if unique {
		b.Write("UNIQUE ")
	}
	return b.Write("INDEX ").Ident(name).Write(" ON ").Ident(table).Write(" ").Idents(columns).String()
}

// DropTable renders DROP TABLE IF EXISTS, with CASCADE when asked.
func (b *Builder) DropTable(table string, cascade bool) string {
	b.Write("DROP TABLE IF EXISTS ").Ident(table)
	if cascade {
		b.Write(" CASCADE")
	}
	return b.String()
}

// Insert renders INSERT INTO "table" ("cols") VALUES with rows tuples.
func (b *Builder) Insert(table string, columns []string, rows int) string {
	return b.Write("INSERT INTO ").Ident(table).Write(" ").Idents(columns).Values(rows, len(columns)).String()
}

// QuoteIdent double quotes s, doubling embedded quotes.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Columns quotes and comma-joins names: Columns("a", "b") is `"a", "b"`.
func Columns(names ...string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// PlaceholdersFrom returns n comma-separated placeholders. Postgres numbers
// them from start; SQLite ignores start.
func PlaceholdersFrom(d Dialect, start, n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	for i := range n {
		if i > 0 {
			sb.WriteString(", ")
		}
		if d == SQLite {
			sb.WriteByte('?')
			continue
		}
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(start + i))
	}
	return sb.String()
}
