package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/service"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/scheduler"
)

func newAuditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check every board's structure and print a JSON report",
		Long:  "Runs the board integrity audit once. Exits non-zero when violations are found.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.env(cmd)
			if err != nil {
				return err
			}
			storage, err := bootstrap.OpenStorage(cmd.Context(), &cfg.Database, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			svc := service.NewBoardService(storage.Boards, nil, logger)
			report, err := scheduler.NewScheduler(svc, logger).RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%d board violations found", len(report.Violations))
			}
			return nil
		},
	}
}
