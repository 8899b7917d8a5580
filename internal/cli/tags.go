package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database/tags"
	"github.com/mrlokans/stacks/internal/semfs"
)

func newTagCommands(cfg *config.Config) []*cobra.Command {
	return []*cobra.Command{
		NewCreateTagCommand(cfg),
		NewDeleteTagCommand(cfg),
		NewListTagsCommand(cfg),
	}
}

func NewCreateTagCommand(cfg *config.Config) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create_tag --tag <name>",
		Short: "Create a tag",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			err := svc.CreateTag(name)
			switch {
			case err == nil:
				say(cmd, `Tag "%s" created successfully.`, name)
			case errors.Is(err, tags.ErrTagExists):
				say(cmd, `Tag "%s" already exists in the database.`, name)
			default:
				sayError(cmd, err)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "tag", "", "tag name")
	cmd.MarkFlagRequired("tag")

	return cmd
}

func NewDeleteTagCommand(cfg *config.Config) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "delete_tag --tag <name>",
		Short: "Delete a tag that no file uses",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			err := svc.DeleteTag(name)
			switch {
			case err == nil:
				say(cmd, `Tag "%s" deleted successfully.`, name)
			case errors.Is(err, tags.ErrTagInUse):
				say(cmd, `Tag "%s" is associated with one or more files and cannot be deleted.`, name)
			default:
				sayError(cmd, err)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "tag", "", "tag name")
	cmd.MarkFlagRequired("tag")

	return cmd
}

func NewListTagsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list_tags",
		Short: "List tags and how many files carry each",
		Args:  cobra.NoArgs,
		RunE: withService(cfg, func(cmd *cobra.Command, svc *semfs.Service, args []string) error {
			usage, err := svc.ListTags()
			if err != nil {
				sayError(cmd, err)
				return nil
			}
			if len(usage) == 0 {
				say(cmd, "No tags found.")
				return nil
			}

			table := make([][]string, 0, len(usage))
			for _, u := range usage {
				table = append(table, []string{strconv.FormatUint(uint64(u.ID), 10), u.Name, strconv.FormatInt(u.Files, 10)})
			}
			renderGrid(cmd.OutOrStdout(), []string{"id", "tag_name", "files"}, table, []bool{true, false, true})
			return nil
		}),
	}
}
