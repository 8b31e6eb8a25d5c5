package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hlop3z/sdelite/internal/cli"
	"github.com/hlop3z/sdelite/pkg/sdelite"
)

// syncCmd fetches the latest build (or reuses the cached one) and converts it.
func syncCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [output]",
		Short: "Download the latest SDE build and convert it",
		Long: `Fetch the latest Static Data Export build into the cache, unless it is
already cached, then convert the selected tables into output.

For SQLite, output is a file path and is replaced. For PostgreSQL, output is a
connection URL (or --database-url); existing tables of the selection are dropped.`,
		Example: `  # Everything into ./sde.db
  sdelite sync

  # Only market data, with every table it references
  sdelite sync market.db -i types,market_groups

  # PostgreSQL
  sdelite sync --dialect postgres "postgres://localhost/sde?sslmode=disable"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.configFile)
			if err != nil {
				return err
			}
			output, err := cfg.target(args)
			if err != nil {
				return err
			}

			s := a.startSession(cmd.Context(), cfg, true)
			client, err := s.client(cfg)
			if err != nil {
				s.close()
				return err
			}
			res, err := client.Sync(s.ctx, output, cfg.Include, cfg.Exclude, cfg.Force)
			s.close()
			if err != nil {
				return err
			}

			if !cfg.Quiet {
				fmt.Fprintf(a.stdout, "%s build %d\n", cli.Success("✓ Synced"), res.Build)
				printSummary(a.stdout, res.Result, output, cfg.Verbose)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", defaultOutput, "SQLite output file")
	cmd.Flags().String("database-url", "", "PostgreSQL connection URL")
	cmd.Flags().BoolP("force", "f", false, "Download even if the build is cached")
	cmd.Flags().Int("batch-size", 1000, "Rows per INSERT statement")
	cmd.Flags().String("base-url", "", "Static data host (default: official endpoint)")
	cmd.Flags().Duration("http-timeout", 0, "Timeout per HTTP request (default: 30m)")
	return cmd
}

// printSummary prints the outcome of a conversion. Per-table counts are
// listed only when detailed is set.
func printSummary(w io.Writer, res *sdelite.Result, output string, detailed bool) {
	if detailed {
		table := cli.NewTable("TABLE", "ROWS", "TIME")
		for _, tc := range res.Tables {
			table.AddRow(tc.Table, humanize.Comma(tc.Rows), tc.Elapsed.Round(time.Millisecond).String())
		}
		fmt.Fprint(w, table.String())
	}
	fmt.Fprintf(w, "  %s, %s rows in %s\n",
		cli.FormatCount(len(res.Tables), "table", "tables"),
		humanize.Comma(res.TotalRows),
		res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  %s\n", cli.FormatKeyValue("output", redact(output)))
}
