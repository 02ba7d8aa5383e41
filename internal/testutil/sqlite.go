// Package testutil opens migrated in-memory databases for repository tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"kb-integration/internal/migrations"
)

// NewDB returns a private in-memory sqlite database with every migration applied.
// A single connection keeps concurrent test goroutines serialised like row locks would.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.Up(context.Background(), db, goose.DialectSQLite3); err != nil {
		t.Fatalf("migrations.Up: %v", err)
	}
	return db
}

// SeedDocument inserts a document at the given version.
func SeedDocument(t *testing.T, db *sql.DB, id, title, content string, version int64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO documents (id, title, content_md, version, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, title, content, version, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}
}

// SeedUser inserts a user row.
func SeedUser(t *testing.T, db *sql.DB, id, displayName string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO users (id, display_name, avatar_url, created_at) VALUES ($1, $2, $3, $4)`,
		id, displayName, "https://avatars.example/"+id, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

// Count returns SELECT COUNT(*) for the given query tail.
func Count(t *testing.T, db *sql.DB, from string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM "+from, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", from, err)
	}
	return n
}
