// Package writer creates the relational schema for a set of tables and bulk
// loads their JSONL sources into it.
//
// A Writer owns one dedicated connection. Every table is created before any
// row is inserted, foreign key enforcement is suspended for the load and
// restored by Finalize, and each table is imported inside its own
// transaction.
package writer

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hlop3z/sdelite/internal/dialect"
	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// DefaultBatchSize is the number of rows per multi-row INSERT unless the
// dialect's parameter limit forces fewer.
const DefaultBatchSize = 1000

// Option configures a Writer.
type Option func(*Writer)

// WithBatchSize sets the rows per INSERT. Values below 1 keep the default.
func WithBatchSize(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

// WithObserver sets the progress observer.
func WithObserver(o progress.Observer) Option {
	return func(w *Writer) {
		w.observer = progress.OrSilent(o)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDropExisting drops the planned tables before creating them. SQLite
// output files are always recreated, so this only matters for servers.
func WithDropExisting(drop bool) Option {
	return func(w *Writer) {
		w.dropExisting = drop
	}
}

// Writer loads tables into one database.
type Writer struct {
	dialect      dialect.Dialect
	db           *sql.DB
	conn         *sql.Conn
	batchSize    int
	observer     progress.Observer
	logger       *slog.Logger
	dropExisting bool

	created []string
}

// Open connects to dsn. For SQLite, dsn is a file path; any existing file is
// removed first, together with its -wal and -shm companions.
func Open(ctx context.Context, d dialect.Dialect, dsn string, opts ...Option) (*Writer, error) {
	w := &Writer{
		dialect:   d,
		batchSize: DefaultBatchSize,
		observer:  progress.Silent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if d.Name() == "sqlite" {
		if err := resetSQLiteFile(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, sderr.Wrap(sderr.ErrConnection, err, "failed to open database").With("dialect", d.Name())
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, sderr.Wrap(sderr.ErrConnection, err, "failed to connect to database").With("dialect", d.Name())
	}
	w.db, w.conn = db, conn

	if err := w.execAll(ctx, sderr.ErrConnection, "configure session", "", d.SessionSQL()); err != nil {
		w.Close()
		return nil, err
	}

	w.logger.Debug("database opened", "dialect", d.Name(), "batch_size", w.batchSize)
	return w, nil
}

func resetSQLiteFile(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return sderr.Wrap(sderr.ErrConnection, err, "failed to remove existing database").WithFile(p, 0)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sderr.Wrap(sderr.ErrConnection, err, "failed to create output directory").WithFile(dir, 0)
		}
	}
	return nil
}

// Dialect returns the dialect the writer generates SQL for.
func (w *Writer) Dialect() dialect.Dialect {
	return w.dialect
}

// CreateTables creates every table, each followed by its indexes, in the
// given order.
func (w *Writer) CreateTables(ctx context.Context, tables []*schema.Table) error {
	planned := make(map[string]bool, len(tables))
	for _, t := range tables {
		planned[t.Name] = true
	}
	inPlan := func(name string) bool { return planned[name] }

	if w.dropExisting {
		for i := len(tables) - 1; i >= 0; i-- {
			name := tables[i].Name
			if err := w.exec(ctx, sderr.ErrCreateTable, "drop table", name, w.dialect.DropTableSQL(name)); err != nil {
				return err
			}
		}
	}

	for _, t := range tables {
		if err := w.exec(ctx, sderr.ErrCreateTable, "create table", t.Name, w.dialect.CreateTableSQL(t, inPlan)); err != nil {
			return err
		}
		if err := w.execAll(ctx, sderr.ErrCreateTable, "create index", t.Name, w.dialect.CreateIndexSQL(t)); err != nil {
			return err
		}
		w.created = append(w.created, t.Name)
	}

	w.logger.Info("tables created", "count", len(tables), "dialect", w.dialect.Name())
	return nil
}

// DisableForeignKeys suspends foreign key enforcement for the created tables.
func (w *Writer) DisableForeignKeys(ctx context.Context) error {
	return w.execAll(ctx, sderr.ErrTransaction, "disable foreign keys", "", w.dialect.DisableForeignKeysSQL(w.created))
}

// Finalize restores foreign key enforcement, refreshes planner statistics
// and closes the connection.
func (w *Writer) Finalize(ctx context.Context) error {
	if err := w.execAll(ctx, sderr.ErrTransaction, "enable foreign keys", "", w.dialect.EnableForeignKeysSQL(w.created)); err != nil {
		return err
	}
	if err := w.execAll(ctx, sderr.ErrTransaction, "optimize database", "", w.dialect.OptimizeSQL()); err != nil {
		return err
	}
	return w.Close()
}

// Close releases the connection. It is safe to call more than once.
func (w *Writer) Close() error {
	var errs []error
	if w.conn != nil {
		errs = append(errs, w.conn.Close())
		w.conn = nil
	}
	if w.db != nil {
		errs = append(errs, w.db.Close())
		w.db = nil
	}
	if err := errors.Join(errs...); err != nil {
		return sderr.Wrap(sderr.ErrConnection, err, "failed to close database")
	}
	return nil
}

func (w *Writer) exec(ctx context.Context, code sderr.Code, op, table, stmt string) error {
	if w.conn == nil {
		return sderr.New(sderr.ErrConnection, "writer is closed")
	}
	w.logger.Debug("exec", "op", op, "table", table, "sql", stmt)
	if _, err := w.conn.ExecContext(ctx, stmt); err != nil {
		return sderr.WrapSQL(code, err, op, table).WithSQL(stmt)
	}
	return nil
}

func (w *Writer) execAll(ctx context.Context, code sderr.Code, op, table string, stmts []string) error {
	for _, stmt := range stmts {
		if err := w.exec(ctx, code, op, table, stmt); err != nil {
			return err
		}
	}
	return nil
}
