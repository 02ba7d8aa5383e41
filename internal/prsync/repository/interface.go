package repository

import (
	"context"

	"kb-integration/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	DocChangeRepository
}

// DocChangeRepository stores the documentation changes derived from pull requests.
type DocChangeRepository interface {
	// CreateDocChanges inserts every change not already recorded and returns
	// how many rows were new.
	CreateDocChanges(ctx context.Context, opts []CreateDocChangeOptions) (int, error)
	ListDocChanges(ctx context.Context, opt ListDocChangesOptions) ([]model.DocChange, error)
}
