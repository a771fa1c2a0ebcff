package main

import (
	"github.com/spf13/cobra"

	"github.com/papervault/portal/internal/db"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations.",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := db.Migrate(a.cfg.DatabaseURL, a.logger); err != nil {
				a.logger.Error("migration failed", "err", err)
				return err
			}
			return nil
		},
	}
}
