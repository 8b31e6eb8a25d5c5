package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/sdelite/internal/cli"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// convertCmd converts an already extracted build directory.
func convertCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "convert [input_dir] [output]",
		Short: "Convert a directory of SDE JSONL files",
		Long: `Convert the JSONL files of input_dir into output. Files missing from
input_dir produce empty tables. With --watch, the conversion re-runs whenever a
file in input_dir changes.`,
		Example: `  sdelite convert ~/.cache/sdelite/3064089 sde.db
  sdelite convert ./sde sde.db -e universe_stars --watch`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.configFile)
			if err != nil {
				return err
			}

			inputDir := cfg.InputDir
			if len(args) > 0 {
				inputDir, args = args[0], args[1:]
			}
			if inputDir == "" {
				return sderr.New(sderr.ErrConfig, "no input directory").
					WithHelp("pass it as the first argument or set input_dir")
			}
			output, err := cfg.target(args)
			if err != nil {
				return err
			}

			s := a.startSession(cmd.Context(), cfg, !watch)
			defer s.close()
			client, err := s.client(cfg)
			if err != nil {
				return err
			}
			plan, err := client.Plan(cfg.Include, cfg.Exclude)
			if err != nil {
				return err
			}

			run := func(ctx context.Context) error {
				res, err := client.Convert(ctx, inputDir, output, plan)
				if err != nil {
					return err
				}
				if !cfg.Quiet {
					fmt.Fprintln(a.stdout, cli.Success("✓ Converted"))
					printSummary(a.stdout, res, output, cfg.Verbose)
				}
				return nil
			}

			if !watch {
				return run(s.ctx)
			}
			return watchDir(s.ctx, inputDir, watchDebounce, s.logger, func(ctx context.Context) error {
				if err := run(ctx); err != nil {
					// Keep watching; the next change may fix the input.
					fmt.Fprint(a.stderr, cli.FormatError(err))
				}
				return nil
			})
		},
	}

	cmd.Flags().String("input-dir", "", "Directory of extracted JSONL files")
	cmd.Flags().StringP("output", "o", defaultOutput, "SQLite output file")
	cmd.Flags().String("database-url", "", "PostgreSQL connection URL")
	cmd.Flags().Int("batch-size", 1000, "Rows per INSERT statement")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run when input files change")
	return cmd
}
