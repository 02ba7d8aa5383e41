package postgre

import (
	"database/sql"
	"fmt"

	"kb-integration/internal/proposal/repository"
	"kb-integration/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed proposal Repository.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("proposal/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("proposal/repository/postgre.%s", method)
}
