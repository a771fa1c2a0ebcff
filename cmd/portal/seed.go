package main

import (
	"github.com/spf13/cobra"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/db"
	"github.com/papervault/portal/internal/seed"
)

func newSeedCommand(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the fixture catalog (branches, sample subjects and papers).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if migrate {
				if err := db.Migrate(a.cfg.DatabaseURL, a.logger); err != nil {
					a.logger.Error("migration failed", "err", err)
					return err
				}
			}

			pool, err := db.Connect(ctx, a.cfg, a.logger)
			if err != nil {
				a.logger.Error("database connection failed", "err", err)
				return err
			}
			defer pool.Close()

			if _, err := seed.Run(ctx, catalog.NewRepository(pool), a.logger); err != nil {
				a.logger.Error("seeding failed", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply migrations before seeding")
	return cmd
}
