// Package migrations embeds the schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) (int, error) {
	provider, err := goose.NewProvider(dialect, db, FS)
	if err != nil {
		return 0, fmt.Errorf("migrations: new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: up: %w", err)
	}
	return len(results), nil
}

// UpPostgres applies migrations with the postgres dialect.
func UpPostgres(ctx context.Context, db *sql.DB) (int, error) {
	return Up(ctx, db, goose.DialectPostgres)
}
