package postgre

import (
	"context"
	"database/sql"
	"errors"

	"kb-integration/internal/model"
	repo "kb-integration/internal/proposal/repository"
)

func (r *implRepository) GetDocument(ctx context.Context, id string) (model.Document, error) {
	const query = `SELECT id, title, content_md, version, updated_at FROM documents WHERE id = $1`

	var d model.Document
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Title, &d.ContentMD, &d.Version, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetDocument"), err)
		return model.Document{}, repo.ErrFailedToGet
	}
	return d, nil
}
