package repository

import "context"

// Repository defines all data access methods for RepositoryConfig.
type Repository interface {
	// UpsertConfig inserts or overwrites the row keyed by RepositoryName.
	UpsertConfig(ctx context.Context, opt UpsertConfigOptions) (StoredConfig, error)
	// CreateConfigIfAbsent inserts the row unless one already exists and reports
	// whether it did. An existing row is never modified.
	CreateConfigIfAbsent(ctx context.Context, opt UpsertConfigOptions) (bool, error)
	// GetOneConfig returns a zero StoredConfig (empty RepositoryName) when not found.
	GetOneConfig(ctx context.Context, opt GetOneConfigOptions) (StoredConfig, error)
	ListConfigs(ctx context.Context, opt ListConfigsOptions) ([]StoredConfig, error)
}
