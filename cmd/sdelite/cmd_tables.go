package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/sdelite/internal/cli"
	"github.com/hlop3z/sdelite/internal/sderr"
	"github.com/hlop3z/sdelite/pkg/sdelite"
)

// tablesCmd lists every table of the catalog.
func tablesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables sdelite can produce",
		Example: `  sdelite tables
  sdelite tables --format json | jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.configFile)
			if err != nil {
				return err
			}
			client, err := sdelite.New(cfg.clientOptions()...)
			if err != nil {
				return err
			}
			tables := client.Tables()

			switch strings.ToLower(format) {
			case "text", "":
				t := cli.NewTable("TABLE", "SOURCE", "DEPENDS ON")
				for _, ti := range tables {
					t.AddRow(ti.Name, ti.SourceFile, strings.Join(ti.Dependencies, ", "))
				}
				fmt.Fprint(a.stdout, t.String())
				fmt.Fprintf(a.stdout, "\n%s\n", cli.Dim(cli.FormatCount(t.Len(), "table", "tables")))
			case "json":
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(tables)
			case "yaml":
				enc := yaml.NewEncoder(a.stdout)
				defer enc.Close()
				return enc.Encode(tables)
			default:
				return unknownFormat(format, "text", "json", "yaml")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	return cmd
}

func unknownFormat(format string, valid ...string) error {
	e := sderr.Newf(sderr.ErrConfig, "unknown format: %s", format).
		WithHelp("valid formats: " + strings.Join(valid, ", "))
	if hint := sderr.SuggestSimilar(format, valid); hint != "" {
		e.WithHelp(hint)
	}
	return e
}
