// Command emsctl runs administrative tasks against the employment service database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/config"
	"github.com/emsworks/employment-service/internal/observability"
	"github.com/emsworks/employment-service/internal/persistence"
)

var (
	cfg     *config.Config
	logger  *zap.Logger
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "emsctl",
	Short:         "Administrative commands for the employment service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		logger, err = observability.NewLogger(cfg.Logger, cfg.App)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")

	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name of the admin")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email of the admin")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// connect opens the pool for a single command run.
func connect(ctx context.Context) (*persistence.Postgres, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pg, nil
}
