package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"invoicedash/internal/config"
	"invoicedash/internal/database"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewDB(cmd.Context(), cfg.DatabaseURI)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			if err := database.InitSchema(cmd.Context(), db); err != nil {
				return err
			}
			slog.Info("schema ready")
			return nil
		},
	}
}
