package repoconfig

import "errors"

var (
	ErrConfigNotFound         = errors.New("repository config not found")
	ErrRepositoryNameRequired = errors.New("repository_name is required")
	ErrInvalidRepositoryName  = errors.New("repository_name must be owner/repo")
	ErrCredentialUnavailable  = errors.New("repository credential cannot be decrypted")
)
