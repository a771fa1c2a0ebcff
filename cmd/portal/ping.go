package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papervault/portal/internal/db"
)

func newPingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := db.Connect(ctx, a.cfg, a.logger)
			if err != nil {
				a.logger.Error("database connection failed", "err", err)
				return err
			}
			defer pool.Close()

			now, err := db.Now(ctx, pool)
			if err != nil {
				a.logger.Error("query failed", "err", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database ok, server time %s\n", now.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}
