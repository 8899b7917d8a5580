// Package cli implements the stacks command tree.
//
// File store commands use underscore names and flags (add_tags --id 1
// --tags a b) and report each outcome as one sentence on stdout. Domain outcomes such
// as a missing tag are reported on stdout and exit 0; only usage errors and an
// unreachable database exit 1.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/stacks/internal/config"
)

type VersionInfo struct {
	Version string
	Commit  string
}

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

func NewRootCommand(cfg *config.Config, info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stacks",
		Short:         "Semantic file store and library catalog",
		Long:          "stacks keeps files and free-form tags in a SQLite database, and serves a small library catalog where users browse and borrow books.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&cfg.Files.DatabasePath, "db", cfg.Files.DatabasePath, "path to the file store database")
	cmd.PersistentFlags().BoolVar(&cfg.Files.AtomicWrites, "atomic", cfg.Files.AtomicWrites, "run each file store write in a single transaction")

	cmd.Version = fmt.Sprintf("%s (%s)", info.Version, info.Commit)

	for _, sub := range newFileCommands(cfg) {
		cmd.AddCommand(sub)
	}
	for _, sub := range newTagCommands(cfg) {
		cmd.AddCommand(sub)
	}
	cmd.AddCommand(NewServeCommand(cfg, info))
	cmd.AddCommand(NewAddUserCommand(cfg))
	cmd.AddCommand(NewVersionCommand(info))

	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func NewVersionCommand(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stacks %s (%s)\n", info.Version, info.Commit)
		},
	}
}
