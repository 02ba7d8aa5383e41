package postgre

import (
	"fmt"

	"kb-integration/internal/webhook/repository"
	"kb-integration/pkg/log"
	"kb-integration/pkg/postgres"
)

type implRepository struct {
	db postgres.DBTX
	l  log.Logger
}

// New creates a new PostgreSQL-backed audit Repository.
func New(db postgres.DBTX, l log.Logger) repository.Repository {
	if db == nil {
		panic("webhook/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("webhook/repository/postgre.%s", method)
}
