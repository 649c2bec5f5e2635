package main

import (
	"github.com/spf13/cobra"

	"confsite/config"
	"confsite/internal/repository/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := postgres.Open(cmd.Context(), cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()
			return postgres.Migrate(db)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the state of every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := postgres.Open(cmd.Context(), cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()
			return postgres.MigrationStatus(db)
		},
	})

	return cmd
}
