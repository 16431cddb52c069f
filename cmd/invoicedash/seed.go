package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"invoicedash/internal/config"
	"invoicedash/internal/database"
	"invoicedash/internal/service"
)

func newSeedCmd(cfg *config.Config) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load placeholder customers, invoices, revenue and a sign-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := database.NewDB(ctx, cfg.DatabaseURI)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			if err := database.InitSchema(ctx, db); err != nil {
				return err
			}

			user, err := service.NewAuthService(db).Register(ctx, name, email, password)
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				slog.Info("user already exists", "email", email)
			case err != nil:
				return err
			default:
				slog.Info("user created", "id", user.ID, "email", user.Email)
			}

			if err := database.Seed(ctx, db); err != nil {
				return err
			}
			slog.Info("seed complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "user-name", "User", "seeded user's name")
	cmd.Flags().StringVar(&email, "user-email", "user@nextmail.com", "seeded user's email")
	cmd.Flags().StringVar(&password, "user-password", "123456", "seeded user's password")
	return cmd
}
