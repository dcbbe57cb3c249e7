package main

import (
	"github.com/SscSPs/cabinet_contabil_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.MigrationsPath
			}
			return database.RunMigrations(a.cfg.DatabaseURL, path, a.logger)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations source URL (defaults to MIGRATIONS_PATH)")
	return cmd
}
