package main

import (
	"github.com/spf13/cobra"

	"github.com/xsukax/go-gitsnap/internal/clone"
	"github.com/xsukax/go-gitsnap/internal/config"
	"github.com/xsukax/go-gitsnap/internal/progress"
)

// cloneFunc allows for mocking in tests
var cloneFunc = clone.Run

func newCloneCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "clone <source> [destination]",
		Short: "Clone a repository",
		Long: `Clone a GitHub repository or a local directory.

The source is either a GitHub HTTPS URL (https://github.com/<owner>/<repo>[.git])
or a local directory path. The destination defaults to the repository name for
remote sources and to the source directory's base name for local ones.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}

			_, err = cloneFunc(clone.Options{
				Source:      args[0],
				Destination: dest,
				Config:      cfg,
				Out:         cmd.OutOrStdout(),
				Tracker:     progress.NewConsoleTracker(cmd.OutOrStdout()),
				Context:     cmd.Context(),
			})
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: $XDG_CONFIG_HOME/gitsnap/config.toml)")

	return cmd
}
