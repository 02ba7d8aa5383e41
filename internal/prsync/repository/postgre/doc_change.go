package postgre

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kb-integration/internal/model"
	repo "kb-integration/internal/prsync/repository"
	"kb-integration/pkg/postgres"
)

// CreateDocChanges writes the batch in one transaction. Rows already present
// for the same (repository, PR, head, file, target) are skipped.
func (r *implRepository) CreateDocChanges(ctx context.Context, opts []repo.CreateDocChangeOptions) (int, error) {
	const query = `
		INSERT INTO doc_changes (id, repository_name, pr_number, head_sha, file_path, target, change_status, rules, delivery_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (repository_name, pr_number, head_sha, file_path, target) DO NOTHING`

	if len(opts) == 0 {
		return 0, nil
	}

	inserted := 0
	err := postgres.WithTx(ctx, r.db, nil, func(ctx context.Context, tx postgres.DBTX) error {
		for _, opt := range opts {
			rules, err := json.Marshal(nonNil(opt.Rules))
			if err != nil {
				return err
			}
			createdAt := opt.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}

			res, err := tx.ExecContext(ctx, query,
				uuid.NewString(), opt.RepositoryName, opt.PRNumber, opt.HeadSHA, opt.FilePath, opt.Target,
				opt.ChangeStatus, string(rules), opt.DeliveryID, createdAt.UTC(),
			)
			if err != nil {
				return fmt.Errorf("%s@%s: %w", opt.FilePath, opt.Target, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateDocChanges"), err)
		return 0, repo.ErrFailedToInsert
	}
	return inserted, nil
}

func (r *implRepository) ListDocChanges(ctx context.Context, opt repo.ListDocChangesOptions) ([]model.DocChange, error) {
	var (
		conditions []string
		args       []any
	)
	if opt.RepositoryName != "" {
		args = append(args, opt.RepositoryName)
		conditions = append(conditions, fmt.Sprintf("repository_name = $%d", len(args)))
	}
	if opt.PRNumber > 0 {
		args = append(args, opt.PRNumber)
		conditions = append(conditions, fmt.Sprintf("pr_number = $%d", len(args)))
	}

	query := `SELECT id, repository_name, pr_number, head_sha, file_path, target, change_status, rules, delivery_id, created_at
		FROM doc_changes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY file_path ASC, target ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListDocChanges"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	changes := []model.DocChange{}
	for rows.Next() {
		var (
			c     model.DocChange
			rules string
		)
		if err := rows.Scan(&c.ID, &c.RepositoryName, &c.PRNumber, &c.HeadSHA, &c.FilePath, &c.Target,
			&c.ChangeStatus, &rules, &c.DeliveryID, &c.CreatedAt); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListDocChanges"), err)
			return nil, repo.ErrFailedToList
		}
		if err := json.Unmarshal([]byte(rules), &c.Rules); err != nil {
			r.l.Errorf(ctx, "%s rules: %v", r.dsn("ListDocChanges"), err)
			return nil, repo.ErrFailedToList
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListDocChanges"), err)
		return nil, repo.ErrFailedToList
	}
	return changes, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
