package cmd

import (
	"fmt"
	"os"

	"campy/config"
	"campy/database"
	"campy/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const version = "1.0.0"

// runtime is what every subcommand needs before doing its work.
type runtime struct {
	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB
}

func bootstrap() (*runtime, error) {
	cfg, warnings, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	for _, w := range warnings {
		log.Warn(w)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, db: db}, nil
}

func (rt *runtime) close() {
	if err := database.Close(rt.db); err != nil {
		rt.log.Warn("closing database", "error", err)
	}
	rt.log.Sync()
}

// Execute runs the campy command line.
func Execute() {
	rootCmd := &cobra.Command{
		Use:           "campy",
		Short:         "Campy - course enrollment and progress API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newReconcileCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
