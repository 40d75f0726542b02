package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/logging"
)

// App carries what every subcommand needs.
type App struct {
	LoadConfig func() (*config.Config, error)
}

// env loads the configuration and builds the process logger.
func (a *App) env(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := a.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.App.LogLevel = lvl
	}
	logger := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	logger.SetOutput(cmd.ErrOrStderr())
	return cfg, logger, nil
}

// NewRootCmd creates the top-level "kanban" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kanban",
		Short:         "Personal kanban board backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "", "override LOG_LEVEL")

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newAuditCmd(app),
	)
	return root
}
