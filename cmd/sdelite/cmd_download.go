package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/sdelite/internal/cli"
)

// downloadCmd fetches the latest build into the cache without converting it.
func downloadCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download and extract the latest SDE build",
		Long: `Fetch the latest build into the cache directory and print where it was
extracted. A cached build whose manifest still matches is reused unless --force.`,
		Example: `  sdelite download
  sdelite download -o ./sde-cache --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, a.configFile)
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.CacheDir = dir
			}

			s := a.startSession(cmd.Context(), cfg, true)
			client, err := s.client(cfg)
			if err != nil {
				s.close()
				return err
			}
			buildDir, build, err := client.Download(s.ctx, cfg.Force)
			s.close()
			if err != nil {
				return err
			}

			if cfg.Quiet {
				fmt.Fprintln(a.stdout, buildDir)
				return nil
			}
			fmt.Fprintf(a.stdout, "%s build %d\n", cli.Success("✓ Downloaded"), build)
			fmt.Fprintf(a.stdout, "  %s\n", cli.FormatKeyValue("input_dir", buildDir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "o", "", "Cache directory to download into")
	cmd.Flags().BoolP("force", "f", false, "Download even if the build is cached")
	cmd.Flags().String("base-url", "", "Static data host (default: official endpoint)")
	cmd.Flags().Duration("http-timeout", 0, "Timeout per HTTP request (default: 30m)")
	return cmd
}
