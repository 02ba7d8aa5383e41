package repoconfig

import (
	"context"

	"kb-integration/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Get(ctx context.Context, repositoryName string, opt ReadOptions) (model.RepositoryConfig, error)
	GetAll(ctx context.Context, opt ReadOptions) ([]model.RepositoryConfig, error)
	Upsert(ctx context.Context, input UpsertInput) (model.RepositoryConfig, error)
	// EnsureDefault stores the naming-convention default unless a config already
	// exists, then returns whatever is stored.
	EnsureDefault(ctx context.Context, repositoryName string, opt ReadOptions) (model.RepositoryConfig, error)
	// GetDefault computes the baseline config from the name alone, without I/O.
	GetDefault(repositoryName string) model.RepositoryConfig
}
