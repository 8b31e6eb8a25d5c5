package sdelite

import (
	"log/slog"
	"time"

	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/source"
)

// Config holds all configuration options for the Client.
type Config struct {
	// CacheDir holds downloaded builds, one directory per build number.
	// Default: the user cache directory + "/sdelite".
	CacheDir string

	// Dialect selects the output database: "sqlite" (default) or "postgres".
	Dialect string

	// BatchSize is the number of rows per INSERT. Default: 1000.
	BatchSize int

	// Observer receives phase, status and progress updates.
	// Default: progress.Silent.
	Observer progress.Observer

	// Fetcher provides SDE builds. Default: a source.Client against the
	// official endpoint.
	Fetcher source.Fetcher

	// Logger receives structured log records. Default: slog.Default().
	Logger *slog.Logger

	// BaseURL and HTTPTimeout configure the default Fetcher.
	BaseURL     string
	HTTPTimeout time.Duration
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithCacheDir sets the build cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Config) {
		c.CacheDir = dir
	}
}

// WithDialect sets the output dialect ("sqlite" or "postgres").
func WithDialect(name string) Option {
	return func(c *Config) {
		c.Dialect = name
	}
}

// WithBatchSize sets the number of rows per INSERT statement. The effective
// size is capped by the dialect's parameter limit.
func WithBatchSize(n int) Option {
	return func(c *Config) {
		c.BatchSize = n
	}
}

// WithObserver sets the progress observer.
func WithObserver(o progress.Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// WithFetcher replaces the build source, e.g. with a local mirror.
func WithFetcher(f source.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithBaseURL points the default Fetcher at another static-data host.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.BaseURL = u
	}
}

// WithHTTPTimeout bounds each request of the default Fetcher.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = d
	}
}
