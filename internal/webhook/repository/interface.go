package repository

import (
	"context"

	"kb-integration/internal/model"
)

// Repository is the audit log of webhook deliveries.
type Repository interface {
	DeliveryRepository
}

// DeliveryRepository defines all data access methods for WebhookDelivery.
type DeliveryRepository interface {
	// CreateDelivery appends an audit record. When opt.DeliveryID was already
	// recorded it returns the existing record and created=false.
	CreateDelivery(ctx context.Context, opt CreateDeliveryOptions) (delivery model.WebhookDelivery, created bool, err error)
	GetOneDelivery(ctx context.Context, opt GetOneDeliveryOptions) (model.WebhookDelivery, error)
	ListDeliveries(ctx context.Context, opt ListDeliveriesOptions) ([]model.WebhookDelivery, error)
	MarkProcessed(ctx context.Context, id string) error
}
