package cli

import (
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/bootstrap"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.env(cmd)
			if err != nil {
				return err
			}
			return bootstrap.Migrate(cmd.Context(), &cfg.Database, logger)
		},
	}
}
