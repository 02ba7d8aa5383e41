package repoconfig

// ReadOptions selects the privilege mode a read runs under.
type ReadOptions struct {
	// Elevated runs the read on the admin connection.
	Elevated bool
	// WithCredential decrypts the stored token into RepositoryConfig.GitHubToken.
	// Only the PR processor sets it.
	WithCredential bool
	// EnabledOnly restricts GetAll to enabled configs.
	EnabledOnly bool
}

// UpsertInput creates or overwrites the config for RepositoryName.
// Nil slices fall back to the naming-convention default; nil Enabled means true;
// nil GitHubToken keeps the stored credential and an empty one clears it.
type UpsertInput struct {
	RepositoryName string
	SourcePatterns []string
	Targets        []string
	Rules          []string
	Enabled        *bool
	GitHubToken    *string
}
