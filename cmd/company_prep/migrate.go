package main

import (
	"fmt"

	"github.com/jonathan/company-prep/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if err := appConfig.RequireDatabase(); err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := db.Migrate(ctx, appConfig.Database.URL); err != nil {
		return err
	}
	version, err := db.MigrationVersion(ctx, appConfig.Database.URL)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database at migration version %d\n", version)
	return nil
}
