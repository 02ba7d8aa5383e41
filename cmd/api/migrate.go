package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kb-integration/config"
	"kb-integration/internal/migrations"
	"kb-integration/pkg/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	dsn := cfg.Database.AdminDSN
	if dsn == "" {
		dsn = cfg.Database.DSN
	}
	db, err := postgres.Connect(ctx, postgres.Config{DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := migrations.UpPostgres(ctx, db)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "Applied %d migrations", n)
	return nil
}
