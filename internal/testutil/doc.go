// Package testutil provides test helpers for the sdelite project.
//
// This package includes:
//   - SQLite database helpers for inspecting converted databases
//   - PostgreSQL setup for integration tests
//   - SQL assertion helpers for comparing generated statements
//   - Error assertion helpers for checking error codes
//   - JSONL fixture writers for building small SDE extracts
//
// # Build Tags
//
// PostgreSQL tests need a running server and the integration tag:
//
//	POSTGRES_URL=postgres://... go test ./... -tags=integration
//
// # Example Usage
//
//	func TestConvert(t *testing.T) {
//	    dir := testutil.TempDir(t)
//	    testutil.WriteJSONL(t, dir, "categories.jsonl",
//	        `{"_key": 4, "name": {"en": "Material"}, "published": true}`,
//	    )
//
//	    // ... run the writer into dir/out.db ...
//
//	    db := testutil.OpenSQLite(t, filepath.Join(dir, "out.db"))
//	    testutil.AssertTableExists(t, db, "categories")
//	    testutil.AssertRowCount(t, db, "categories", 1)
//	}
package testutil
