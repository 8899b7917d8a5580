package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/semfs"
)

func newFileCommands(cfg *config.Config) []*cobra.Command {
	return []*cobra.Command{
		NewImportCommand(cfg),
		NewExportCommand(cfg),
		NewFindCommand(cfg),
		NewCreateCommand(cfg),
		NewDeleteCommand(cfg),
		NewAddTagsCommand(cfg),
		NewRemoveTagsCommand(cfg),
		NewOpenCommand(cfg),
		NewPruneCommand(cfg),
	}
}

func NewImportCommand(cfg *config.Config) *cobra.Command {
	var fullName string
	var tagNames []string

	cmd := &cobra.Command{
		Use:   "import --full_name <path> [--tags <tag>...]",
		Short: "Import a file from the filesystem",
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			names, err := collectTags(cmd, tagNames, args)
			if err != nil {
				return err
			}
			if _, err := svc.ImportFile(fullName, names); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "File imported successfully.")
			return nil
		}),
	}

	cmd.Flags().StringVar(&fullName, "full_name", "", "full name of the file in the filesystem")
	cmd.Flags().StringArrayVar(&tagNames, "tags", nil, "tags associated with the file")
	cmd.MarkFlagRequired("full_name")

	return cmd
}

func NewExportCommand(cfg *config.Config) *cobra.Command {
	var id uint
	var fullName string

	cmd := &cobra.Command{
		Use:   "export --id <id> --full_name <path>",
		Short: "Write a stored file back to the filesystem",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			if err := svc.ExportFile(id, fullName); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "File exported successfully.")
			return nil
		}),
	}

	cmd.Flags().UintVar(&id, "id", 0, "ID of the file in the database")
	cmd.Flags().StringVar(&fullName, "full_name", "", "destination path in the filesystem")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("full_name")

	return cmd
}

func NewFindCommand(cfg *config.Config) *cobra.Command {
	var name string
	var tagNames []string

	cmd := &cobra.Command{
		Use:   "find [--name <text>] [--tags <tag>...]",
		Short: "Find files by name and tags",
		Long:  "Find files whose name contains --name (ASCII letters match in any case) and that carry every tag given in --tags. Without filters all files are listed.",
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			names, err := collectTags(cmd, tagNames, args)
			if err != nil {
				return err
			}

			rows, err := svc.FindFiles(name, names)
			if err != nil {
				sayError(cmd, err)
				return nil
			}
			if len(rows) == 0 {
				say(cmd, "No files found.")
				return nil
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{strconv.FormatUint(uint64(r.ID), 10), r.Name, r.DateAdded, r.Tags})
			}
			renderGrid(cmd.OutOrStdout(), []string{"id", "file_name", "date_added", "tags"}, table, []bool{true, false, false, false})
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "part of the file name")
	cmd.Flags().StringArrayVar(&tagNames, "tags", nil, "tags the file must carry")

	return cmd
}

func NewCreateCommand(cfg *config.Config) *cobra.Command {
	var name string
	var tagNames []string

	cmd := &cobra.Command{
		Use:   "create --name <name> [--tags <tag>...]",
		Short: "Create a file record without contents",
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			names, err := collectTags(cmd, tagNames, args)
			if err != nil {
				return err
			}
			if _, err := svc.CreateFile(name, names); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "File created successfully.")
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the file")
	cmd.Flags().StringArrayVar(&tagNames, "tags", nil, "tags associated with the file")
	cmd.MarkFlagRequired("name")

	return cmd
}

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	var id uint

	cmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a stored file",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			if err := svc.DeleteFile(id); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "File deleted successfully.")
			return nil
		}),
	}

	cmd.Flags().UintVar(&id, "id", 0, "ID of the file in the database")
	cmd.MarkFlagRequired("id")

	return cmd
}

func NewAddTagsCommand(cfg *config.Config) *cobra.Command {
	var id uint
	var tagNames []string

	cmd := &cobra.Command{
		Use:   "add_tags --id <id> --tags <tag>...",
		Short: "Attach tags to a file",
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			names, err := collectTags(cmd, tagNames, args)
			if err != nil {
				return err
			}
			if err := svc.AddTags(id, names); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "Tags added successfully.")
			return nil
		}),
	}

	cmd.Flags().UintVar(&id, "id", 0, "ID of the file in the database")
	cmd.Flags().StringArrayVar(&tagNames, "tags", nil, "tags to attach")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("tags")

	return cmd
}

func NewRemoveTagsCommand(cfg *config.Config) *cobra.Command {
	var id uint
	var tagNames []string

	cmd := &cobra.Command{
		Use:   "remove_tags --id <id> --tags <tag>...",
		Short: "Detach tags from a file",
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			names, err := collectTags(cmd, tagNames, args)
			if err != nil {
				return err
			}
			if err := svc.RemoveTags(id, names); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "Tags removed successfully.")
			return nil
		}),
	}

	cmd.Flags().UintVar(&id, "id", 0, "ID of the file in the database")
	cmd.Flags().StringArrayVar(&tagNames, "tags", nil, "tags to detach")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("tags")

	return cmd
}

func NewOpenCommand(cfg *config.Config) *cobra.Command {
	var id uint

	cmd := &cobra.Command{
		Use:   "open --id <id>",
		Short: "Check that a stored file can be opened",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			if err := svc.OpenFile(id); err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "File opened successfully.")
			return nil
		}),
	}

	cmd.Flags().UintVar(&id, "id", 0, "ID of the file in the database")
	cmd.MarkFlagRequired("id")

	return cmd
}

func NewPruneCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove tag links that point at deleted files or tags",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			n, err := svc.Prune()
			if err != nil {
				sayError(cmd, err)
				return nil
			}
			say(cmd, "Removed %d orphaned tag links.", n)
			return nil
		}),
	}
}
