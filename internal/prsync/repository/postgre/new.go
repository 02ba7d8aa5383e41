package postgre

import (
	"database/sql"
	"fmt"

	"kb-integration/internal/prsync/repository"
	"kb-integration/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL-backed doc change Repository.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("prsync/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("prsync/repository/postgre.%s", method)
}
