package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/papervault/portal/internal/config"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	cfg    *config.Config
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Engineering question paper portal.",
		Long:          "Portal serves past exam question papers organised by branch, semester and subject,\nbacked by Postgres for the catalog and S3-compatible or local storage for the PDFs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, dotenv, err := config.Load()
			if err != nil {
				fmt.Fprintln(os.Stderr, "config:", err)
				return err
			}
			logger, err := newLogger(cfg, os.Stderr)
			if err != nil {
				fmt.Fprintln(os.Stderr, "logger:", err)
				return err
			}
			if !dotenv {
				logger.Debug("no .env file found, using environment only")
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
	}

	root.AddCommand(newServeCommand(a))
	root.AddCommand(newMigrateCommand(a))
	root.AddCommand(newSeedCommand(a))
	root.AddCommand(newPingCommand(a))
	return root
}
