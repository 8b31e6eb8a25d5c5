package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hlop3z/sdelite/pkg/sdelite"
)

// schemaCmd prints the DDL, or the schema model, of a table selection.
func schemaCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema [tables...]",
		Short: "Print the generated schema for a table selection",
		Long: `Print the CREATE TABLE and CREATE INDEX statements for the selected tables
in the configured dialect, or the schema model as YAML. Tables given as
arguments are selected together with their dependencies, like --include.`,
		Example: `  sdelite schema types
  sdelite schema --dialect postgres -e universe_stars
  sdelite schema blueprints --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.configFile)
			if err != nil {
				return err
			}
			include := cfg.Include
			if len(args) > 0 {
				include = append(append([]string(nil), include...), args...)
			}

			client, err := sdelite.New(cfg.clientOptions()...)
			if err != nil {
				return err
			}
			plan, err := client.Plan(include, cfg.Exclude)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "sql", "":
				for _, stmt := range client.DDL(plan) {
					fmt.Fprintf(a.stdout, "%s;\n", stmt)
				}
			case "yaml":
				out, err := plan.YAML()
				if err != nil {
					return err
				}
				_, err = a.stdout.Write(out)
				return err
			default:
				return unknownFormat(format, "sql", "yaml")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "sql", "Output format: sql, yaml")
	return cmd
}
