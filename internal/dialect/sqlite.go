package dialect

import (
	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sqlgen"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// sqlite implements the Dialect interface for SQLite.
type sqlite struct{}

// SQLite returns the SQLite dialect implementation.
func SQLite() Dialect {
	return &sqlite{}
}

func (d *sqlite) Name() string {
	return "sqlite"
}

func (d *sqlite) DriverName() string {
	return "sqlite"
}

func (d *sqlite) Builder() *sqlgen.Builder {
	return sqlgen.New(sqlgen.SQLite)
}

// -----------------------------------------------------------------------------
// Type mappings
// -----------------------------------------------------------------------------

func (d *sqlite) ColumnType(t schema.ColumnType) string {
	switch t {
	case schema.Integer, schema.Boolean:
		return "INTEGER"
	case schema.Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

// -----------------------------------------------------------------------------
// Identifiers and parameters
// -----------------------------------------------------------------------------

func (d *sqlite) QuoteIdent(name string) string {
	return sqlgen.QuoteIdent(name)
}

// MaxParams is SQLITE_MAX_VARIABLE_NUMBER for SQLite 3.32 and later.
func (d *sqlite) MaxParams() int {
	return 32766
}

func (d *sqlite) AllowsDanglingForeignKeys() bool {
	return true
}

// -----------------------------------------------------------------------------
// Session and load statements
// -----------------------------------------------------------------------------

func (d *sqlite) SessionSQL() []string {
	return []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000",
		"PRAGMA temp_store=MEMORY",
	}
}

// FK enforcement in SQLite is per connection, so the table list is unused.
func (d *sqlite) DisableForeignKeysSQL(_ []string) []string {
	return []string{"PRAGMA foreign_keys=OFF"}
}

func (d *sqlite) EnableForeignKeysSQL(_ []string) []string {
	return []string{"PRAGMA foreign_keys=ON"}
}

func (d *sqlite) OptimizeSQL() []string {
	return []string{"PRAGMA optimize"}
}

// -----------------------------------------------------------------------------
// DDL and DML generation
// -----------------------------------------------------------------------------

func (d *sqlite) DropTableSQL(table string) string {
	return d.Builder().DropTable(table, false)
}

func (d *sqlite) CreateTableSQL(t *schema.Table, planned func(string) bool) string {
	return buildCreateTableSQL(d, t, planned)
}

func (d *sqlite) CreateIndexSQL(t *schema.Table) []string {
	return buildCreateIndexSQL(d, t)
}

func (d *sqlite) InsertSQL(t *schema.Table, rows int) string {
	return buildInsertSQL(d, t, rows)
}
