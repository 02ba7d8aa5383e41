package usecase

import (
	"kb-integration/internal/repoconfig/repository"
	"kb-integration/pkg/encrypter"
	"kb-integration/pkg/log"
)

// implUseCase is the private implementation of repoconfig.UseCase.
type implUseCase struct {
	repo      repository.Repository
	encrypter encrypter.Encrypter
	l         log.Logger
}

// New creates a new repoconfig UseCase implementation.
func New(repo repository.Repository, enc encrypter.Encrypter, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:      repo,
		encrypter: enc,
		l:         l,
	}
}
