package writer

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/hlop3z/sdelite/internal/dialect"
	"github.com/hlop3z/sdelite/internal/parser"
	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
	"github.com/hlop3z/sdelite/internal/strutil"
)

const (
	readBufferSize = 1 << 20
	excerptLength  = 120
)

// ImportTable streams t's source file from dir into the database and returns
// the number of rows inserted. A missing source file is not an error: the
// table stays empty and 0 is returned.
//
// The whole table is loaded in one transaction. Cancelling ctx does not
// interrupt a table already in progress.
func (w *Writer) ImportTable(ctx context.Context, t *schema.Table, dir string) (int64, error) {
	if w.conn == nil {
		return 0, sderr.New(sderr.ErrConnection, "writer is closed").WithTable(t.Name)
	}

	path := filepath.Join(dir, t.SourceFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Info("source file missing, table left empty", "table", t.Name, "file", t.SourceFile)
		progress.Logf(w.observer, "%s: skipped, %s not found", t.Name, t.SourceFile)
		return 0, nil
	}
	if err != nil {
		return 0, sderr.Wrap(sderr.ErrReadSource, err, "failed to open source file").WithTable(t.Name).WithFile(path, 0)
	}
	defer f.Close()

	total, err := countLines(f)
	if err != nil {
		return 0, sderr.Wrap(sderr.ErrReadSource, err, "failed to read source file").WithTable(t.Name).WithFile(path, 0)
	}

	ctx = context.WithoutCancel(ctx)
	tx, err := w.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, sderr.WrapSQL(sderr.ErrTransaction, err, "begin transaction", t.Name)
	}
	defer tx.Rollback()

	var lineNo uint64
	ins := &inserter{
		ctx:      ctx,
		tx:       tx,
		dialect:  w.dialect,
		table:    t,
		columns:  t.PhysicalColumns(),
		perBatch: dialect.BatchRows(w.dialect, w.batchSize, len(t.PhysicalColumns())),
	}
	ins.afterFlush = func() {
		w.observer.SetProgress(lineNo, total, fmt.Sprintf("%s: %s rows", t.Name, humanize.Comma(ins.rows)))
	}
	defer ins.close()

	reader := bufio.NewReaderSize(f, readBufferSize)
	for {
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			if line = bytes.TrimSpace(line); len(line) > 0 {
				rows, err := parser.Parse(line, t)
				if err != nil {
					return 0, lineError(err, t, path, lineNo, line)
				}
				if err := ins.add(rows); err != nil {
					return 0, err
				}
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return 0, sderr.Wrap(sderr.ErrReadSource, readErr, "failed to read source file").WithTable(t.Name).WithFile(path, int(lineNo))
		}
	}

	if err := ins.flush(); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, sderr.WrapSQL(sderr.ErrTransaction, err, "commit", t.Name)
	}

	w.logger.Info("table imported", "table", t.Name, "rows", ins.rows, "lines", lineNo)
	progress.Logf(w.observer, "%s: %s rows", t.Name, humanize.Comma(ins.rows))
	return ins.rows, nil
}

// lineError attaches the source position and an excerpt of the offending line.
func lineError(err error, t *schema.Table, path string, lineNo uint64, line []byte) error {
	var e *sderr.Error
	if !errors.As(err, &e) {
		e = sderr.Wrap(sderr.ErrMalformedJSON, err, "failed to parse line")
	}
	return e.WithTable(t.Name).
		WithFile(path, int(lineNo)).
		With("excerpt", strutil.Truncate(string(line), excerptLength))
}

// countLines counts the lines in f, including a final unterminated one, and
// rewinds f.
func countLines(f *os.File) (uint64, error) {
	buf := make([]byte, 64*1024)
	var n uint64
	var last byte = '\n'
	for {
		c, err := f.Read(buf)
		if c > 0 {
			n += uint64(bytes.Count(buf[:c], []byte{'\n'}))
			last = buf[c-1]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if last != '\n' {
		n++
	}
	_, err := f.Seek(0, io.SeekStart)
	return n, err
}

// -----------------------------------------------------------------------------
// Batched insert
// -----------------------------------------------------------------------------

// inserter accumulates bound arguments and flushes them as multi-row INSERTs.
// The full-batch statement is prepared once per table; the final partial
// batch gets its own statement.
type inserter struct {
	ctx        context.Context
	tx         *sql.Tx
	dialect    dialect.Dialect
	table      *schema.Table
	columns    []string
	perBatch   int
	afterFlush func()

	full    *sql.Stmt
	args    []any
	pending int
	rows    int64
}

func (b *inserter) add(rows []parser.Row) error {
	for _, r := range rows {
		b.args = append(b.args, r.Args(b.columns)...)
		b.pending++
		if b.pending == b.perBatch {
			if err := b.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *inserter) flush() error {
	if b.pending == 0 {
		return nil
	}

	stmt, err := b.statement(b.pending)
	if err != nil {
		return err
	}
	if b.pending != b.perBatch {
		defer stmt.Close()
	}

	if _, err := stmt.ExecContext(b.ctx, b.args...); err != nil {
		return sderr.WrapSQL(sderr.ErrInsert, err, "insert rows", b.table.Name).With("rows", b.pending)
	}

	b.rows += int64(b.pending)
	b.args = b.args[:0]
	b.pending = 0
	if b.afterFlush != nil {
		b.afterFlush()
	}
	return nil
}

func (b *inserter) statement(rows int) (*sql.Stmt, error) {
	if rows == b.perBatch && b.full != nil {
		return b.full, nil
	}
	query := b.dialect.InsertSQL(b.table, rows)
	stmt, err := b.tx.PrepareContext(b.ctx, query)
	if err != nil {
		return nil, sderr.WrapSQL(sderr.ErrInsert, err, "prepare insert", b.table.Name)
	}
	if rows == b.perBatch {
		b.full = stmt
	}
	return stmt, nil
}

func (b *inserter) close() {
	if b.full != nil {
		b.full.Close()
	}
}
