package repository

import "kb-integration/internal/model"

// StoredConfig is a config row with its credential still encrypted.
type StoredConfig struct {
	model.RepositoryConfig
	EncryptedToken string
}

// UpsertConfigOptions holds the full row to write.
type UpsertConfigOptions struct {
	RepositoryName string
	SourcePatterns []string
	Targets        []string
	Rules          []string
	Enabled        bool
	// SetToken replaces the stored credential with EncryptedToken; otherwise the
	// stored value is kept.
	SetToken       bool
	EncryptedToken string
}

// GetOneConfigOptions fetches one row by name.
type GetOneConfigOptions struct {
	RepositoryName string
	Elevated       bool
}

// ListConfigsOptions filters the config listing, ordered by name.
type ListConfigsOptions struct {
	EnabledOnly bool
	Elevated    bool
}
