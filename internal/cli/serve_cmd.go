package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/GoSim-25-26J-441/kanban-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/cache"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/service"
	boardtemplate "github.com/GoSim-25-26J-441/kanban-backend/internal/board/template"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/scheduler"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/telemetry"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.env(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownTracing := telemetry.Setup(logger)
			defer func() { _ = shutdownTracing(context.Background()) }()

			storage, err := bootstrap.OpenStorage(ctx, &cfg.Database, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			var cachePinger httpapi.Pinger
			rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
			if err != nil {
				logger.WithError(err).Warn("redis unavailable, snapshot cache disabled")
			}
			if rdb != nil {
				defer rdb.Close()
				cachePinger = bootstrap.RedisPinger{Client: rdb}
			}
			snapshots := cache.NewSnapshotCache(rdb, cfg.Redis.CacheTTL, logger)
			tpl, err := boardtemplate.Load(cfg.Board.TemplatePath)
			if err != nil {
				return err
			}
			svc := service.NewBoardService(storage.Boards, snapshots, logger, service.WithTemplate(tpl))

			authenticate, releaseAuth, err := bootstrap.Authenticator(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer releaseAuth()

			if cfg.Audit.Schedule != "" && cfg.Audit.Schedule != "off" {
				sched := scheduler.NewScheduler(svc, logger)
				if err := sched.Start(cfg.Audit.Schedule); err != nil {
					return err
				}
				defer sched.Stop()
			}

			bootstrap.SetGinMode(cfg.App.Environment)
			router := bootstrap.BuildRouter(bootstrap.RouterDeps{
				Config:       cfg,
				Logger:       logger,
				Boards:       svc,
				Users:        storage.Users,
				Authenticate: authenticate,
				DB:           storage,
				Cache:        cachePinger,
			})

			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.WithField("port", cfg.Server.Port).Info("listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
