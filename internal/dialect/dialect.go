// Package dialect provides database-specific SQL generation.
// Each dialect maps schema column types to storage types, quotes
// identifiers, and generates the DDL and bulk-load statements the
// writer executes.
package dialect

import (
	"sort"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
	"github.com/hlop3z/sdelite/internal/sqlgen"
)

// Dialect defines the interface for database-specific SQL generation.
// Implementations exist for SQLite and PostgreSQL.
type Dialect interface {
	// Name returns the dialect name (sqlite, postgres).
	Name() string

	// DriverName returns the database/sql driver registered for the dialect.
	DriverName() string

	// Builder returns a fresh SQL builder configured for the dialect.
	Builder() *sqlgen.Builder

	// -------------------------------------------------------------------------
	// Type mappings (schema -> SQL)
	// -------------------------------------------------------------------------

	// ColumnType returns the storage type for a schema column type.
	// Localized columns are expanded before this is called and map to TEXT.
	ColumnType(t schema.ColumnType) string

	// -------------------------------------------------------------------------
	// Identifiers and parameters
	// -------------------------------------------------------------------------

	// QuoteIdent quotes an identifier (table or column name).
	QuoteIdent(name string) string

	// MaxParams is the largest number of bound parameters one statement may carry.
	MaxParams() int

	// -------------------------------------------------------------------------
	// Feature flags
	// -------------------------------------------------------------------------

	// AllowsDanglingForeignKeys reports whether a FOREIGN KEY clause may name
	// a table that does not exist. SQLite resolves references lazily;
	// PostgreSQL rejects them at CREATE time.
	AllowsDanglingForeignKeys() bool

	// -------------------------------------------------------------------------
	// Session and load statements
	// -------------------------------------------------------------------------

	// SessionSQL returns statements run once after connecting.
	SessionSQL() []string

	// DisableForeignKeysSQL returns statements that suspend FK enforcement
	// for the given tables during bulk load.
	DisableForeignKeysSQL(tables []string) []string

	// EnableForeignKeysSQL restores FK enforcement after the load.
	EnableForeignKeysSQL(tables []string) []string

	// OptimizeSQL returns statements that refresh planner statistics.
	OptimizeSQL() []string

	// -------------------------------------------------------------------------
	// DDL and DML generation
	// -------------------------------------------------------------------------

	// DropTableSQL generates a DROP TABLE IF EXISTS statement.
	DropTableSQL(table string) string

	// CreateTableSQL generates the CREATE TABLE statement for t. planned
	// reports whether a referenced table is part of the same run.
	CreateTableSQL(t *schema.Table, planned func(string) bool) string

	// CreateIndexSQL generates every CREATE INDEX statement for t.
	CreateIndexSQL(t *schema.Table) []string

	// InsertSQL generates a multi-row INSERT of rows rows into t.
	InsertSQL(t *schema.Table, rows int) string
}

var registry = map[string]func() Dialect{
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"postgres":   Postgres,
	"postgresql": Postgres,
}

// Get returns the dialect implementation for the given name.
func Get(name string) (Dialect, error) {
	if ctor, ok := registry[name]; ok {
		return ctor(), nil
	}
	return nil, sderr.Newf(sderr.ErrUnsupportedDialect, "unsupported dialect: %s", name).
		WithHelp("supported dialects: sqlite, postgres")
}

// Names returns the canonical names of all supported dialects.
func Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, ctor := range registry {
		n := ctor().Name()
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// BatchRows returns how many rows of width columns fit one INSERT, capped at
// batchSize and by the dialect's parameter limit. It is never below 1.
func BatchRows(d Dialect, batchSize, width int) int {
	rows := batchSize
	if width > 0 {
		rows = min(rows, d.MaxParams()/width)
	}
	return max(rows, 1)
}
