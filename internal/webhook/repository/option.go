package repository

import "time"

// CreateDeliveryOptions holds parameters for appending a WebhookDelivery.
type CreateDeliveryOptions struct {
	DeliveryID     string
	EventType      string
	Action         string
	RepositoryName string
	Payload        []byte
	ReceivedAt     time.Time
}

// GetOneDeliveryOptions holds filter parameters for fetching one WebhookDelivery.
// All non-empty fields are applied as AND conditions.
type GetOneDeliveryOptions struct {
	ID         string
	DeliveryID string
}

// ListDeliveriesOptions holds filter parameters for listing deliveries, oldest first.
type ListDeliveriesOptions struct {
	EventType string
	Processed *bool
	Limit     int
}
