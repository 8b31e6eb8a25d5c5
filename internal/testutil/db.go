package testutil

import (
	"database/sql"
	"testing"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// OpenSQLite opens an existing SQLite database file for inspection.
// The connection is automatically closed when the test completes.
func OpenSQLite(t testing.TB, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite file: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping sqlite: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// AssertTableExists checks that a table exists in the SQLite database.
func AssertTableExists(t testing.TB, db *sql.DB, table string) {
	t.Helper()

	if !sqliteObjectExists(t, db, "table", table) {
		t.Errorf("expected table %q to exist, but it does not", table)
	}
}

// AssertTableNotExists checks that a table does not exist in the SQLite database.
func AssertTableNotExists(t testing.TB, db *sql.DB, table string) {
	t.Helper()

	if sqliteObjectExists(t, db, "table", table) {
		t.Errorf("expected table %q to not exist, but it does", table)
	}
}

// AssertIndexExists checks that an index exists in the SQLite database.
func AssertIndexExists(t testing.TB, db *sql.DB, index string) {
	t.Helper()

	if !sqliteObjectExists(t, db, "index", index) {
		t.Errorf("expected index %q to exist, but it does not", index)
	}
}

func sqliteObjectExists(t testing.TB, db *sql.DB, typ, name string) bool {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, typ, name).Scan(&n)
	if err != nil {
		t.Fatalf("failed to check if %s %q exists: %v", typ, name, err)
	}
	return n > 0
}

// Columns returns the column names of a SQLite table in declaration order.
func Columns(t testing.TB, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		t.Fatalf("failed to get table info: %v", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to read table info: %v", err)
	}
	return cols
}

// ExecSQL executes a SQL statement and fails the test on error.
func ExecSQL(t testing.TB, db *sql.DB, query string, args ...any) {
	t.Helper()

	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL:\n%s\nerror: %v", query, err)
	}
}

// QueryInt runs a query returning a single integer, such as a COUNT(*).
func QueryInt(t testing.TB, db *sql.DB, query string, args ...any) int64 {
	t.Helper()

	var n sql.NullInt64
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to query SQL:\n%s\nerror: %v", query, err)
	}
	return n.Int64
}

// AssertRowCount checks that a table has the expected number of rows.
func AssertRowCount(t testing.TB, db *sql.DB, table string, expected int) {
	t.Helper()

	count := QueryInt(t, db, `SELECT COUNT(*) FROM "`+table+`"`)
	if count != int64(expected) {
		t.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
}
