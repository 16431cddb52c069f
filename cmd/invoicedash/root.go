package main

import (
	"github.com/spf13/cobra"

	"invoicedash/internal/config"
)

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "invoicedash",
		Short:         "Invoice dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.ApplyEnv()
		},
	}
	cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd(cfg), newMigrateCmd(cfg), newSeedCmd(cfg))
	return root
}
