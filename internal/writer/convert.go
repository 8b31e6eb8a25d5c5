package writer

import (
	"context"
	"fmt"
	"time"

	"github.com/hlop3z/sdelite/internal/dialect"
	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/schema"
)

// Plan is everything a conversion needs: where rows come from, where they
// go, and which tables in which order.
type Plan struct {
	Dialect  dialect.Dialect
	DSN      string
	InputDir string
	Tables   []*schema.Table
}

// TableCount is the outcome of one table's import.
type TableCount struct {
	Table   string        `json:"table" yaml:"table"`
	Rows    int64         `json:"rows" yaml:"rows"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Result summarizes a conversion. Tables are in import order.
type Result struct {
	Tables    []TableCount  `json:"tables" yaml:"tables"`
	TotalRows int64         `json:"total_rows" yaml:"total_rows"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Rows returns the row count recorded for table.
func (r *Result) Rows(table string) (int64, bool) {
	for _, tc := range r.Tables {
		if tc.Table == table {
			return tc.Rows, true
		}
	}
	return 0, false
}

// Convert runs a full conversion: open, create every table, suspend foreign
// keys, import each table in plan order, then finalize. ctx is only checked
// between tables.
func Convert(ctx context.Context, plan Plan, opts ...Option) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, err := Open(ctx, plan.Dialect, plan.DSN, opts...)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	w.observer.SetPhase(progress.Converting)
	w.observer.SetStatus(fmt.Sprintf("Creating %d tables", len(plan.Tables)))

	if err := w.CreateTables(ctx, plan.Tables); err != nil {
		return nil, err
	}
	if err := w.DisableForeignKeys(ctx); err != nil {
		return nil, err
	}

	res := &Result{Tables: make([]TableCount, 0, len(plan.Tables))}
	for i, t := range plan.Tables {
		if err := ctx.Err(); err != nil {
			w.logger.Warn("conversion cancelled", "before_table", t.Name, "completed", i)
			return nil, err
		}

		w.observer.SetStatus(fmt.Sprintf("Importing %s (%d/%d)", t.Name, i+1, len(plan.Tables)))
		tableStart := time.Now()
		n, err := w.ImportTable(ctx, t, plan.InputDir)
		if err != nil {
			return nil, err
		}
		res.Tables = append(res.Tables, TableCount{Table: t.Name, Rows: n, Elapsed: time.Since(tableStart)})
		res.TotalRows += n
	}

	w.observer.SetStatus("Finalizing database")
	if err := w.Finalize(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	w.observer.SetPhase(progress.Complete)
	w.logger.Info("conversion complete", "tables", len(res.Tables), "rows", res.TotalRows, "elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}
