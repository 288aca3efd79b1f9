package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emsworks/employment-service/internal/persistence"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pg, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	names, err := persistence.MigrationNames()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(names))
	return nil
}
