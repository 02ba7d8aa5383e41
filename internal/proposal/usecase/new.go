package usecase

import (
	"time"

	"kb-integration/internal/proposal/repository"
	"kb-integration/internal/quality"
	"kb-integration/pkg/log"
)

// implUseCase is the private implementation of proposal.UseCase.
type implUseCase struct {
	repo repository.Repository
	gate quality.Gate
	l    log.Logger
	now  func() time.Time
}

// New creates a new proposal UseCase implementation.
func New(repo repository.Repository, gate quality.Gate, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		gate: gate,
		l:    l,
		now:  time.Now,
	}
}
