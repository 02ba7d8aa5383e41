package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kb-integration/config"
	"kb-integration/internal/httpserver"
	"kb-integration/internal/migrations"
	"kb-integration/internal/prsync"
	"kb-integration/internal/quality"
	"kb-integration/internal/ratelimit"
	"kb-integration/internal/webhook"
	"kb-integration/pkg/encrypter"
	"kb-integration/pkg/github"
	"kb-integration/pkg/log"
	"kb-integration/pkg/postgres"
	"kb-integration/pkg/scope"
	"kb-integration/pkg/similarity"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the pull request workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	logger := newLogger(cfg)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting kb-integration...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, adminDB, err := openDatabases(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if adminDB != db {
		defer adminDB.Close()
	}

	if cfg.Database.MigrateOnStart {
		n, err := migrations.UpPostgres(ctx, adminDB)
		if err != nil {
			return err
		}
		logger.Infof(ctx, "Applied %d migrations", n)
	}

	// 4. Identity, secrets and collaborators
	jwtManager, err := scope.New(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}
	enc, err := encrypter.New(cfg.Encryption.Key)
	if err != nil {
		return err
	}
	scorer, err := similarity.New(similarity.Config{
		Provider:      cfg.Similarity.Provider,
		APIKey:        cfg.Similarity.APIKey,
		Model:         cfg.Similarity.Model,
		BaseURL:       cfg.Similarity.BaseURL,
		RetryAttempts: uint64(max(cfg.Similarity.RetryAttempts, 0)),
	})
	if err != nil {
		return fmt.Errorf("similarity: %w", err)
	}
	githubClient := github.New(github.Config{BaseURL: cfg.GitHub.APIURL, Token: cfg.GitHub.Token})

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		DB:              db,
		AdminDB:         adminDB,
		JWTManager:      jwtManager,
		AdminUserIDs:    cfg.Auth.AdminUserIDs,
		Encrypter:       enc,
		Webhook: webhook.Config{
			Secret:         cfg.Webhook.Secret,
			AllowedActions: cfg.Webhook.AllowedActions,
			Workers:        cfg.Webhook.Workers,
			QueueSize:      cfg.Webhook.QueueSize,
		},
		ReplayOnStart: cfg.Webhook.ReplayOnStart,
		RateLimit:     rateLimitConfig(cfg),
		Quality: quality.Config{
			Threshold:          cfg.Quality.Threshold,
			MinLength:          cfg.Quality.MinLength,
			DuplicateThreshold: cfg.Quality.DuplicateThreshold,
		},
		Scorer:     scorer,
		FileLister: githubClient,
		PRSync:     prsync.Config{RetryAttempts: uint64(max(cfg.GitHub.RetryAttempts, 0))},
	})
	if err != nil {
		return fmt.Errorf("initialize HTTP server: %w", err)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
	return nil
}

func newLogger(cfg *config.Config) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// openDatabases returns the application handle and the privileged one. Without
// an admin DSN both are the same handle.
func openDatabases(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, *sql.DB, error) {
	pgCfg := postgres.Config{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	db, err := postgres.Connect(ctx, pgCfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AdminDSN == "" || cfg.AdminDSN == cfg.DSN {
		return db, db, nil
	}

	pgCfg.DSN = cfg.AdminDSN
	pgCfg.MaxOpenConns = 4
	adminDB, err := postgres.Connect(ctx, pgCfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("admin database: %w", err)
	}
	return db, adminDB, nil
}

func rateLimitConfig(cfg *config.Config) ratelimit.Config {
	return ratelimit.Config{
		Policies: map[string]ratelimit.Policy{
			ratelimit.CategoryProposalCreate: {
				Requests: cfg.RateLimit.ProposalCreate.Requests,
				Window:   cfg.RateLimit.ProposalCreate.Window,
			},
			ratelimit.CategoryWebhook: {
				Requests: cfg.Webhook.RateLimitPerMin,
				Window:   time.Minute,
			},
		},
		MaxActors: cfg.RateLimit.MaxActors,
	}
}
