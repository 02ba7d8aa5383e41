package postgre

import (
	"fmt"

	"kb-integration/internal/repoconfig/repository"
	"kb-integration/pkg/log"
	"kb-integration/pkg/postgres"
)

type implRepository struct {
	db      postgres.DBTX // restricted role
	adminDB postgres.DBTX // elevated role
	l       log.Logger
}

// New creates a config Repository. Reads flagged Elevated run on adminDB;
// writes always do. A nil adminDB falls back to db.
func New(db, adminDB postgres.DBTX, l log.Logger) repository.Repository {
	if db == nil {
		panic("repoconfig/repository/postgre: db is required")
	}
	if adminDB == nil {
		adminDB = db
	}
	return &implRepository{db: db, adminDB: adminDB, l: l}
}

func (r *implRepository) conn(elevated bool) postgres.DBTX {
	if elevated {
		return r.adminDB
	}
	return r.db
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("repoconfig/repository/postgre.%s", method)
}
