// Package main provides gitsnap, a cross-platform clone utility that works
// without a native git client: GitHub repositories are acquired as snapshot
// ZIP downloads, local directories as recursive copies.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/xsukax/go-gitsnap/internal/errors"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitsnap",
		Short: "Cross-platform repository clone utility",
		Long: `A clone utility that works without a git client. GitHub HTTPS URLs are
cloned by downloading a snapshot ZIP of the default branch; local directories
are cloned by copying the tree, .git included.

Example usage:
  gitsnap clone https://github.com/user/repo.git
  gitsnap clone https://github.com/user/repo.git my-folder
  gitsnap clone /path/to/local/repo
  gitsnap clone /path/to/local/repo my-copy`,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			// No or unrecognized subcommand: usage help, exit 1
			_ = cmd.Help()
			os.Exit(1)
		},
	}

	cmd.AddCommand(newCloneCmd())
	return cmd
}

func main() {
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	go func() {
		<-interrupted
		fmt.Println("\nOperation cancelled by user")
		os.Exit(130)
	}()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.Fatal(err) {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
