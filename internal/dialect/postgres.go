package dialect

import (
	"github.com/lib/pq"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sqlgen"
)

// postgres implements the Dialect interface for PostgreSQL.
type postgres struct{}

// Postgres returns the PostgreSQL dialect implementation.
func Postgres() Dialect {
	return &postgres{}
}

func (d *postgres) Name() string {
	return "postgres"
}

func (d *postgres) DriverName() string {
	return "postgres"
}

func (d *postgres) Builder() *sqlgen.Builder {
	return sqlgen.New(sqlgen.Postgres)
}

// -----------------------------------------------------------------------------
// Type mappings
// -----------------------------------------------------------------------------

// Booleans stay numeric (0/1) so both dialects hold identical values.
func (d *postgres) ColumnType(t schema.ColumnType) string {
	switch t {
	case schema.Integer:
		return "BIGINT"
	case schema.Real:
		return "DOUBLE PRECISION"
	case schema.Boolean:
		return "SMALLINT"
	case schema.JSON:
		return "JSONB"
	default:
		return "TEXT"
	}
}

// -----------------------------------------------------------------------------
// Identifiers and parameters
// -----------------------------------------------------------------------------

func (d *postgres) QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// MaxParams is the wire protocol's int16 parameter count limit.
func (d *postgres) MaxParams() int {
	return 65535
}

func (d *postgres) AllowsDanglingForeignKeys() bool {
	return false
}

// -----------------------------------------------------------------------------
// Session and load statements
// -----------------------------------------------------------------------------

func (d *postgres) SessionSQL() []string {
	return []string{"SET synchronous_commit = off"}
}

// Disabling the RI triggers needs table ownership; superuser for system triggers.
func (d *postgres) DisableForeignKeysSQL(tables []string) []string {
	return d.alterTriggers(tables, "DISABLE")
}

func (d *postgres) EnableForeignKeysSQL(tables []string) []string {
	return d.alterTriggers(tables, "ENABLE")
}

func (d *postgres) alterTriggers(tables []string, action string) []string {
	stmts := make([]string, 0, len(tables))
	for _, t := range tables {
		stmts = append(stmts, "ALTER TABLE "+d.QuoteIdent(t)+" "+action+" TRIGGER ALL")
	}
	return stmts
}

func (d *postgres) OptimizeSQL() []string {
	return []string{"ANALYZE"}
}

// -----------------------------------------------------------------------------
// DDL and DML generation
// -----------------------------------------------------------------------------

func (d *postgres) DropTableSQL(table string) string {
	return d.Builder().DropTable(table, true)
}

func (d *postgres) CreateTableSQL(t *schema.Table, planned func(string) bool) string {
	return buildCreateTableSQL(d, t, planned)
}

func (d *postgres) CreateIndexSQL(t *schema.Table) []string {
	return buildCreateIndexSQL(d, t)
}

func (d *postgres) InsertSQL(t *schema.Table, rows int) string {
	return buildInsertSQL(d, t, rows)
}
