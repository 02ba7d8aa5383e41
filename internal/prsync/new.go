package prsync

import (
	"time"

	"kb-integration/internal/prsync/repository"
	"kb-integration/internal/repoconfig"
	"kb-integration/pkg/log"
)

type implUseCase struct {
	configs repoconfig.UseCase
	files   FileLister
	repo    repository.Repository
	cfg     Config
	l       log.Logger
	now     func() time.Time
}

// New creates the pull request processor.
func New(configs repoconfig.UseCase, files FileLister, repo repository.Repository, cfg Config, l log.Logger) UseCase {
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaultRetryBase
	}
	return &implUseCase{
		configs: configs,
		files:   files,
		repo:    repo,
		cfg:     cfg,
		l:       l,
		now:     time.Now,
	}
}
