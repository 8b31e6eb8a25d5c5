// Package main provides the sdelite CLI: it downloads the EVE Online Static
// Data Export and loads it into SQLite or PostgreSQL.
//
// Usage:
//
//	sdelite sync [output]               # Fetch the latest build and convert it
//	sdelite download [-o dir] [-f]      # Fetch into the cache only
//	sdelite convert <input_dir> [out]   # Convert an extracted build
//	sdelite tables [--format F]         # List tables and dependencies
//	sdelite schema [tables...]          # Print DDL or the schema model
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hlop3z/sdelite/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configFile string
	stdout     io.Writer
	stderr     io.Writer
	// interactive reports whether a full-screen view may be used.
	interactive bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sdelite",
		Short: "Load the EVE Online Static Data Export into SQLite or PostgreSQL",
		Long: `sdelite downloads the EVE Online Static Data Export (JSONL) and normalizes
it into relational tables with foreign keys and indexes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "Path to config file (default: ./sdelite.yaml)")
	pf.BoolP("quiet", "q", false, "Only print warnings and errors")
	pf.BoolP("verbose", "v", false, "Print debug logs")
	pf.Bool("no-tui", false, "Disable the full-screen progress view")
	pf.StringSliceP("include", "i", nil, "Tables to include, with their dependencies (comma separated)")
	pf.StringSliceP("exclude", "e", nil, "Tables to exclude, with their direct dependents (comma separated)")
	pf.String("dialect", defaultDialect, "Output dialect: sqlite, postgres")
	pf.String("cache-dir", "", "Build cache directory (default: user cache dir)")

	root.AddCommand(
		syncCmd(a),
		downloadCmd(a),
		convertCmd(a),
		tablesCmd(a),
		schemaCmd(a),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// The first signal cancels after the current table; the second kills.
	go func() {
		<-ctx.Done()
		stop()
	}()

	a := &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: cli.IsTerminal(os.Stderr) && cli.IsTerminal(os.Stdin),
	}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
