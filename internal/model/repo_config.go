package model

import "time"

// RepositoryConfig holds the ingestion rules for one repository.
type RepositoryConfig struct {
	RepositoryName string
	SourcePatterns []string
	Targets        []string
	Rules          []string
	Enabled        bool
	// GitHubToken is write-only: it is set on upsert and decrypted for the
	// processor, but never rendered by any read endpoint.
	GitHubToken string
	HasToken    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
