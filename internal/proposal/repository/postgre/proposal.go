package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kb-integration/internal/model"
	"kb-integration/internal/proposal"
	repo "kb-integration/internal/proposal/repository"
	"kb-integration/pkg/postgres"
)

const proposalColumns = `id, target_doc_id, author_id, change_kind, title, content_md, rationale, base_doc_version, status, quality_score, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateProposal is a compare-and-insert: the SELECT only yields a row while the
// document still has the expected version, and the partial unique index on
// pending (document, base version) stops a second claim on that version.
func (r *implRepository) CreateProposal(ctx context.Context, opt repo.CreateProposalOptions) (model.Proposal, error) {
	const insert = `
		INSERT INTO proposals (` + proposalColumns + `)
		SELECT $1, d.id, $2, $3, $4, $5, $6, d.version, $7, $8, $9
		FROM documents d
		WHERE d.id = $10 AND d.version = $11
		RETURNING ` + proposalColumns

	var created model.Proposal
	err := postgres.WithTx(ctx, r.db, nil, func(ctx context.Context, tx postgres.DBTX) error {
		row := tx.QueryRowContext(ctx, insert,
			uuid.NewString(), opt.AuthorID, string(opt.ChangeKind), opt.Title, opt.ContentMD, opt.Rationale,
			string(model.ProposalPending), opt.QualityScore, opt.CreatedAt.UTC(),
			opt.TargetDocID, opt.ExpectedVersion,
		)

		p, err := scanProposal(row)
		if err == nil {
			created = p
			return nil
		}
		if postgres.IsUniqueViolation(err) {
			return &repo.VersionConflictError{CurrentVersion: opt.ExpectedVersion, PendingClaim: true}
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		// Nothing inserted: the document moved on or is gone.
		var current int64
		err = tx.QueryRowContext(ctx, `SELECT version FROM documents WHERE id = $1`, opt.TargetDocID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return repo.ErrDocumentNotFound
		}
		if err != nil {
			return err
		}
		return &repo.VersionConflictError{CurrentVersion: current}
	})

	var conflict *repo.VersionConflictError
	switch {
	case err == nil:
		return created, nil
	case errors.As(err, &conflict), errors.Is(err, repo.ErrDocumentNotFound):
		return model.Proposal{}, err
	default:
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateProposal"), err)
		return model.Proposal{}, repo.ErrFailedToInsert
	}
}

func scanProposal(row rowScanner, extra ...any) (model.Proposal, error) {
	var (
		p          model.Proposal
		changeKind string
		status     string
	)
	dest := append([]any{
		&p.ID, &p.TargetDocID, &p.AuthorID, &changeKind, &p.Title, &p.ContentMD, &p.Rationale,
		&p.BaseDocVersion, &status, &p.QualityScore, &p.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.Proposal{}, err
	}
	p.ChangeKind = model.ChangeKind(changeKind)
	p.Status = model.ProposalStatus(status)
	return p, nil
}

// ListProposals returns newest-first proposals joined with their author and target.
func (r *implRepository) ListProposals(ctx context.Context, opt repo.ListProposalsOptions) ([]proposal.ListItem, error) {
	var (
		conditions []string
		args       []any
	)
	if opt.Status != "" {
		args = append(args, opt.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if opt.AuthorID != "" {
		args = append(args, opt.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if opt.TargetDocID != "" {
		args = append(args, opt.TargetDocID)
		conditions = append(conditions, fmt.Sprintf("p.target_doc_id = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT p.id, p.target_doc_id, p.author_id, p.change_kind, p.title, p.content_md, p.rationale,
		p.base_doc_version, p.status, p.quality_score, p.created_at,
		COALESCE(u.display_name, ''), COALESCE(u.avatar_url, ''), d.title, d.version
		FROM proposals p
		JOIN documents d ON d.id = p.target_doc_id
		LEFT JOIN users u ON u.id = p.author_id`)
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY p.created_at DESC, p.id DESC")
	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListProposals"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	items := []proposal.ListItem{}
	for rows.Next() {
		var item proposal.ListItem
		p, err := scanProposal(rows,
			&item.Author.DisplayName, &item.Author.AvatarURL, &item.TargetDoc.Title, &item.TargetDoc.Version,
		)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListProposals"), err)
			return nil, repo.ErrFailedToList
		}
		item.Proposal = p
		item.Author.ID = p.AuthorID
		item.TargetDoc.ID = p.TargetDocID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListProposals"), err)
		return nil, repo.ErrFailedToList
	}
	return items, nil
}
