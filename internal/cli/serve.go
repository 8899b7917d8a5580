package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/entrypoint"
)

func NewServeCommand(cfg *config.Config, info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the library catalog web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(cfg, info.Version)
		},
	}

	cmd.Flags().StringVar(&cfg.Catalog.DatabasePath, "catalog-db", cfg.Catalog.DatabasePath, "path to the catalog database")
	cmd.Flags().Int32Var(&cfg.HTTP.Port, "port", cfg.HTTP.Port, "port to listen on")

	return cmd
}
