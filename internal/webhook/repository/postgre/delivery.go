package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kb-integration/internal/model"
	repo "kb-integration/internal/webhook/repository"
)

const deliveryColumns = `id, delivery_id, event_type, action, repository_name, payload, processed, received_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row rowScanner) (model.WebhookDelivery, error) {
	var (
		d          model.WebhookDelivery
		deliveryID sql.NullString
		payload    string
	)
	if err := row.Scan(&d.ID, &deliveryID, &d.EventType, &d.Action, &d.RepositoryName, &payload, &d.Processed, &d.ReceivedAt); err != nil {
		return model.WebhookDelivery{}, err
	}
	d.DeliveryID = deliveryID.String
	d.Payload = []byte(payload)
	return d, nil
}

// CreateDelivery appends an audit row. A repeated DeliveryID is a no-op that
// returns the stored row.
func (r *implRepository) CreateDelivery(ctx context.Context, opt repo.CreateDeliveryOptions) (model.WebhookDelivery, bool, error) {
	const query = `
		INSERT INTO webhook_deliveries (id, delivery_id, event_type, action, repository_name, payload, processed, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		ON CONFLICT (delivery_id) DO NOTHING
		RETURNING ` + deliveryColumns

	receivedAt := opt.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	var deliveryID sql.NullString
	if opt.DeliveryID != "" {
		deliveryID = sql.NullString{String: opt.DeliveryID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), deliveryID, opt.EventType, opt.Action, opt.RepositoryName, string(opt.Payload), receivedAt.UTC(),
	)
	d, err := scanDelivery(row)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetOneDelivery(ctx, repo.GetOneDeliveryOptions{DeliveryID: opt.DeliveryID})
		if getErr != nil {
			return model.WebhookDelivery{}, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateDelivery"), err)
		return model.WebhookDelivery{}, false, repo.ErrFailedToInsert
	}
	return d, true, nil
}

// GetOneDelivery returns a zero-value delivery (ID == "") when not found.
func (r *implRepository) GetOneDelivery(ctx context.Context, opt repo.GetOneDeliveryOptions) (model.WebhookDelivery, error) {
	var (
		conditions []string
		args       []any
	)
	if opt.ID != "" {
		args = append(args, opt.ID)
		conditions = append(conditions, fmt.Sprintf("id = $%d", len(args)))
	}
	if opt.DeliveryID != "" {
		args = append(args, opt.DeliveryID)
		conditions = append(conditions, fmt.Sprintf("delivery_id = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return model.WebhookDelivery{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM webhook_deliveries WHERE %s LIMIT 1", deliveryColumns, strings.Join(conditions, " AND "))
	d, err := scanDelivery(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.WebhookDelivery{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneDelivery"), err)
		return model.WebhookDelivery{}, repo.ErrFailedToGet
	}
	return d, nil
}

// ListDeliveries returns deliveries oldest first.
func (r *implRepository) ListDeliveries(ctx context.Context, opt repo.ListDeliveriesOptions) ([]model.WebhookDelivery, error) {
	var (
		conditions []string
		args       []any
	)
	if opt.EventType != "" {
		args = append(args, opt.EventType)
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if opt.Processed != nil {
		args = append(args, *opt.Processed)
		conditions = append(conditions, fmt.Sprintf("processed = $%d", len(args)))
	}

	query := "SELECT " + deliveryColumns + " FROM webhook_deliveries"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY received_at ASC"
	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListDeliveries"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var deliveries []model.WebhookDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListDeliveries"), err)
			return nil, repo.ErrFailedToList
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListDeliveries"), err)
		return nil, repo.ErrFailedToList
	}
	return deliveries, nil
}

// MarkProcessed flips processed to true. It is the only mutation of an audit row.
func (r *implRepository) MarkProcessed(ctx context.Context, id string) error {
	const query = `UPDATE webhook_deliveries SET processed = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("MarkProcessed"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}
