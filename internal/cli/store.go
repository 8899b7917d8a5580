package cli

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database"
	"github.com/mrlokans/stacks/internal/database/files"
	"github.com/mrlokans/stacks/internal/database/tags"
	"github.com/mrlokans/stacks/internal/semfs"
)

const msgConnectionFailed = "Error: Unable to establish connection to the database."

type runFunc func(cmd *cobra.Command, svc *semfs.Service, args []string) error

// withService opens the file store for the duration of one command.
func withService(cfg *config.Config, run runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := database.NewFilesDatabase(cfg.Files.DatabasePath)
		if err != nil {
			log.Printf("Failed to open file store %s: %v", cfg.Files.DatabasePath, err)
			fmt.Fprintln(cmd.OutOrStdout(), msgConnectionFailed)
			return fmt.Errorf("%w: %v", errReported, err)
		}
		defer db.Close()

		svc := semfs.NewService(
			tags.NewRegistry(db.DB, cfg.Files.AtomicWrites),
			files.NewRepository(db.DB, cfg.Files.AtomicWrites),
		)
		return run(cmd, svc, args)
	}
}

// say prints one outcome line to stdout.
func say(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
}

// sayError prints the user-facing message for a failed file operation.
func sayError(cmd *cobra.Command, err error) {
	var missing *files.MissingTagError
	switch {
	case errors.As(err, &missing):
		say(cmd, `Tag "%s" does not exist. Please create it first.`, missing.Name)
	case errors.Is(err, files.ErrFileNotFound), errors.Is(err, files.ErrNoPayload):
		say(cmd, "File not found in the database.")
	default:
		log.Printf("File store operation failed: %v", err)
		say(cmd, "%v", err)
	}
}

// collectTags merges --tags with trailing positional arguments, so that
// `--tags a b c` passes three tags.
func collectTags(cmd *cobra.Command, flagged, args []string) ([]string, error) {
	if len(args) > 0 && !cmd.Flags().Changed("tags") {
		return nil, fmt.Errorf("unexpected arguments %q", args)
	}
	return append(flagged, args...), nil
}
