package main

import (
	"github.com/spf13/cobra"

	pgInfra "github.com/fastygo/planner/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg.Migrations.Enabled = true
	return pgInfra.RunMigrations(cfg, log)
}
