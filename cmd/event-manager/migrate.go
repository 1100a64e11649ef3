package main

import (
	"eventManager/internal/storage/postgres"
	"github.com/spf13/cobra"
	"log/slog"
)

var (
	downSteps int

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateUpCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(func(log *slog.Logger, storage *postgres.Storage) error {
				if err := storage.MigrateUp(); err != nil {
					return err
				}

				log.Info("migrations applied")

				return nil
			})
		},
	}

	migrateDownCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(func(log *slog.Logger, storage *postgres.Storage) error {
				if err := storage.MigrateDown(downSteps); err != nil {
					return err
				}

				log.Info("migrations rolled back", slog.Int("steps", downSteps))

				return nil
			})
		},
	}
)

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func withStorage(fn func(log *slog.Logger, storage *postgres.Storage) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := setupLogger(cfg.Env)

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer storage.Close()

	return fn(log, storage)
}
