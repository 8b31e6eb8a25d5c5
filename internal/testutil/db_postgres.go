//go:build integration

package testutil

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/url"
	"os"
	"testing"

	"github.com/lib/pq"
)

// SetupPostgres returns a connection string whose search_path points at a
// fresh schema, dropped when the test completes. The server comes from
// POSTGRES_URL; the test is skipped when it is unset.
func SetupPostgres(t testing.TB) string {
	t.Helper()

	base := os.Getenv("POSTGRES_URL")
	if base == "" {
		t.Skip("POSTGRES_URL not set")
	}

	admin, err := sql.Open("postgres", base)
	if err != nil {
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := admin.Ping(); err != nil {
		admin.Close()
		t.Fatalf("failed to ping postgres: %v", err)
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		admin.Close()
		t.Fatalf("failed to generate schema name: %v", err)
	}
	schema := "sdelite_test_" + hex.EncodeToString(suffix)

	if _, err := admin.Exec("CREATE SCHEMA " + pq.QuoteIdentifier(schema)); err != nil {
		admin.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		admin.Exec("DROP SCHEMA IF EXISTS " + pq.QuoteIdentifier(schema) + " CASCADE")
		admin.Close()
	})

	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("POSTGRES_URL must be a URL: %v", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}
