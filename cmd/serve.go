package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campy/database"
	"campy/routers"
	"campy/services"
	"campy/utils"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			if !skipMigrate {
				if err := database.Migrate(rt.db, rt.log); err != nil {
					return err
				}
			}

			notifier := services.NewNotifier(rt.cfg.CompletionWebhookURL, rt.cfg.WebhookTimeout, rt.log)
			svc := services.New(rt.db, rt.cfg, rt.log, notifier)

			scheduler, err := utils.InitializeReconcileScheduler(rt.cfg.ReconcileSchedule, svc.Reconciler.ReconcileEnrollmentCounts, rt.log)
			if err != nil {
				return fmt.Errorf("start reconcile scheduler: %w", err)
			}
			if scheduler != nil {
				defer func() { <-scheduler.Stop().Done() }()
			}

			app := routers.NewApp(rt.cfg, rt.log, rt.db, svc, routers.Options{})

			errCh := make(chan error, 1)
			go func() {
				rt.log.Info("Campy API is running", "port", rt.cfg.Port, "env", rt.cfg.Env)
				errCh <- app.Listen(":" + rt.cfg.Port)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				rt.log.Info("shutting down", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(ctx); err != nil {
				return err
			}
			if err := notifier.Drain(ctx); err != nil {
				rt.log.Warn("pending webhook events dropped", "error", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not run migrations on startup")
	return cmd
}
