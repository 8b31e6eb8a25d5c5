package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hlop3z/sdelite/internal/sderr"
	"github.com/hlop3z/sdelite/internal/writer"
	"github.com/hlop3z/sdelite/pkg/sdelite"
)

const (
	envPrefix      = "SDELITE"
	configName     = "sdelite"
	defaultOutput  = "sde.db"
	defaultDialect = "sqlite"
)

// Config is the merged configuration of one command run.
// Precedence: CLI flags > SDELITE_* env vars > sdelite.yaml > defaults.
type Config struct {
	Output      string        `mapstructure:"output"`
	InputDir    string        `mapstructure:"input_dir"`
	CacheDir    string        `mapstructure:"cache_dir"`
	Dialect     string        `mapstructure:"dialect"`
	DatabaseURL string        `mapstructure:"database_url"`
	Include     []string      `mapstructure:"include"`
	Exclude     []string      `mapstructure:"exclude"`
	BatchSize   int           `mapstructure:"batch_size"`
	Force       bool          `mapstructure:"force"`
	Quiet       bool          `mapstructure:"quiet"`
	Verbose     bool          `mapstructure:"verbose"`
	NoTUI       bool          `mapstructure:"no_tui"`
	BaseURL     string        `mapstructure:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"input-dir":    "input_dir",
	"cache-dir":    "cache_dir",
	"database-url": "database_url",
	"batch-size":   "batch_size",
	"no-tui":       "no_tui",
	"base-url":     "base_url",
	"http-timeout": "http_timeout",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", defaultOutput)
	v.SetDefault("input_dir", "")
	v.SetDefault("cache_dir", "")
	v.SetDefault("dialect", defaultDialect)
	v.SetDefault("database_url", "")
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("batch_size", writer.DefaultBatchSize)
	v.SetDefault("force", false)
	v.SetDefault("quiet", false)
	v.SetDefault("verbose", false)
	v.SetDefault("no_tui", false)
	v.SetDefault("base_url", "")
	v.SetDefault("http_timeout", "0s")
}

// loadConfig layers defaults, the config file, the environment and the
// flags of cmd into a Config. An explicit configFile must exist; the
// implicit ./sdelite.yaml is optional.
func loadConfig(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, sderr.Wrap(sderr.ErrConfig, err, "failed to read config file").
				With("file", configFile)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, sderr.Wrap(sderr.ErrInternal, bindErr, "failed to bind flags")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, sderr.Wrap(sderr.ErrConfig, err, "invalid configuration")
	}
	cfg.Include = splitList(cfg.Include)
	cfg.Exclude = splitList(cfg.Exclude)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.BatchSize < 1:
		return sderr.Newf(sderr.ErrConfig, "batch_size must be positive, got %d", c.BatchSize)
	case c.Quiet && c.Verbose:
		return sderr.New(sderr.ErrConfig, "quiet and verbose cannot be used together")
	case c.HTTPTimeout < 0:
		return sderr.New(sderr.ErrConfig, "http_timeout must not be negative")
	}
	return nil
}

// splitList flattens comma separated entries, so "a,b" from an env var
// and ["a", "b"] from a flag or file read the same.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// target returns where converted rows go: an explicit argument, then the
// database URL for PostgreSQL, then the output path.
func (c *Config) target(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.isPostgres() {
		if c.DatabaseURL == "" {
			return "", sderr.New(sderr.ErrConfig, "postgres output needs a database URL").
				WithHelp("pass the URL as an argument, --database-url or SDELITE_DATABASE_URL")
		}
		return c.DatabaseURL, nil
	}
	return c.Output, nil
}

func (c *Config) isPostgres() bool {
	return c.Dialect == "postgres" || c.Dialect == "postgresql"
}

// clientOptions translates the config into public API options.
func (c *Config) clientOptions() []sdelite.Option {
	opts := []sdelite.Option{
		sdelite.WithDialect(c.Dialect),
		sdelite.WithBatchSize(c.BatchSize),
	}
	if c.CacheDir != "" {
		opts = append(opts, sdelite.WithCacheDir(c.CacheDir))
	}
	if c.BaseURL != "" {
		opts = append(opts, sdelite.WithBaseURL(c.BaseURL))
	}
	if c.HTTPTimeout > 0 {
		opts = append(opts, sdelite.WithHTTPTimeout(c.HTTPTimeout))
	}
	return opts
}
