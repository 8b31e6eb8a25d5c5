// Package sdelite converts the EVE Online Static Data Export (JSONL) into a
// relational database, SQLite or PostgreSQL.
//
// Example:
//
//	client, err := sdelite.New(sdelite.WithDialect("sqlite"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := client.Sync(ctx, "sde.db", []string{"types"}, nil, false)
package sdelite

import (
	"context"
	"log/slog"

	"github.com/hlop3z/sdelite/internal/dialect"
	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/registry"
	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/source"
	"github.com/hlop3z/sdelite/internal/writer"
)

// Result summarizes a conversion; Tables are in import order.
type Result = writer.Result

// TableCount is the outcome of one table's import.
type TableCount = writer.TableCount

// SyncResult is a Result plus the build it came from.
type SyncResult struct {
	Build    uint64  `json:"build" yaml:"build"`
	InputDir string  `json:"input_dir" yaml:"input_dir"`
	Result   *Result `json:"result" yaml:"result"`
}

// TableInfo describes one table of the catalog.
type TableInfo struct {
	Name         string   `json:"name" yaml:"name"`
	SourceFile   string   `json:"source_file" yaml:"source_file"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Junction     bool     `json:"junction" yaml:"junction"`
}

// Plan is an ordered table selection: every table appears after the tables
// it references.
type Plan struct {
	tables []*schema.Table
}

// Names returns the table names in import order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.tables))
	for i, t := range p.tables {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tables in the plan.
func (p *Plan) Len() int { return len(p.tables) }

// Client is the entry point for fetching and converting SDE builds.
type Client struct {
	config   *Config
	dialect  dialect.Dialect
	registry *registry.Registry
	fetcher  source.Fetcher
	logger   *slog.Logger
	observer progress.Observer
}

// New creates a Client. Unknown dialects are rejected here rather than at
// the first conversion.
func New(opts ...Option) (*Client, error) {
	cfg := &Config{
		Dialect:   "sqlite",
		BatchSize: writer.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	d, err := dialect.Get(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	if cfg.CacheDir == "" {
		dir, err := source.DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		cfg.CacheDir = dir
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := progress.OrSilent(cfg.Observer)

	fetcher := cfg.Fetcher
	if fetcher == nil {
		srcOpts := []source.Option{source.WithObserver(observer), source.WithLogger(logger)}
		if cfg.BaseURL != "" {
			srcOpts = append(srcOpts, source.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPTimeout > 0 {
			srcOpts = append(srcOpts, source.WithTimeout(cfg.HTTPTimeout))
		}
		fetcher = source.NewClient(srcOpts...)
	}

	return &Client{
		config:   cfg,
		dialect:  d,
		registry: registry.Default(),
		fetcher:  fetcher,
		logger:   logger,
		observer: observer,
	}, nil
}

// Dialect returns the output dialect name.
func (c *Client) Dialect() string { return c.dialect.Name() }

// CacheDir returns the build cache directory.
func (c *Client) CacheDir() string { return c.config.CacheDir }

// Tables lists every table of the catalog in registry order.
func (c *Client) Tables() []TableInfo {
	all := c.registry.All()
	infos := make([]TableInfo, len(all))
	for i, t := range all {
		infos[i] = TableInfo{
			Name:         t.Name,
			SourceFile:   t.SourceFile,
			Dependencies: t.Dependencies(),
			Junction:     t.IsJunction(),
		}
	}
	return infos
}

// Plan resolves a table selection. With include, the named tables are
// closed over their foreign-key parents and child tables; with exclude,
// the named tables and their direct referrers are dropped. Passing both is
// an error; passing neither selects every table.
func (c *Client) Plan(include, exclude []string) (*Plan, error) {
	tables, err := c.registry.Select(include, exclude)
	if err != nil {
		return nil, err
	}
	c.logger.Info("tables selected", "count", len(tables), "include", include, "exclude", exclude)
	return &Plan{tables: tables}, nil
}

// Convert loads the JSONL files of inputDir into output: a file path for
// SQLite, a connection URL for PostgreSQL. An existing SQLite file is
// replaced; existing PostgreSQL tables of the plan are dropped first.
func (c *Client) Convert(ctx context.Context, inputDir, output string, plan *Plan) (*Result, error) {
	if plan == nil {
		var err error
		if plan, err = c.Plan(nil, nil); err != nil {
			return nil, err
		}
	}

	return writer.Convert(ctx, writer.Plan{
		Dialect:  c.dialect,
		DSN:      output,
		InputDir: inputDir,
		Tables:   plan.tables,
	},
		writer.WithBatchSize(c.config.BatchSize),
		writer.WithObserver(c.observer),
		writer.WithLogger(c.logger),
		writer.WithDropExisting(c.dialect.Name() != "sqlite"),
	)
}

// Download makes the latest build available in the cache and returns its
// directory and build number. A cached build is reused unless force is set.
func (c *Client) Download(ctx context.Context, force bool) (string, uint64, error) {
	return c.fetcher.Fetch(ctx, c.config.CacheDir, force)
}

// Sync downloads (or reuses) the latest build and converts the selection
// into output.
func (c *Client) Sync(ctx context.Context, output string, include, exclude []string, force bool) (*SyncResult, error) {
	// Resolve first so a bad selection fails before any download.
	plan, err := c.Plan(include, exclude)
	if err != nil {
		return nil, err
	}

	dir, build, err := c.Download(ctx, force)
	if err != nil {
		return nil, err
	}

	res, err := c.Convert(ctx, dir, output, plan)
	if err != nil {
		return nil, err
	}
	c.logger.Info("sync complete", "build", build, "tables", len(res.Tables), "rows", res.TotalRows)
	return &SyncResult{Build: build, InputDir: dir, Result: res}, nil
}
