package usecase

import (
	"context"

	"kb-integration/internal/model"
	"kb-integration/internal/repoconfig"
	repo "kb-integration/internal/repoconfig/repository"
)

// Get returns the stored config for repositoryName or ErrConfigNotFound.
func (uc *implUseCase) Get(ctx context.Context, repositoryName string, opt repoconfig.ReadOptions) (model.RepositoryConfig, error) {
	stored, err := uc.repo.GetOneConfig(ctx, repo.GetOneConfigOptions{
		RepositoryName: repositoryName,
		Elevated:       opt.Elevated,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Get GetOneConfig: %v", err)
		return model.RepositoryConfig{}, err
	}
	if stored.RepositoryName == "" {
		return model.RepositoryConfig{}, repoconfig.ErrConfigNotFound
	}

	return uc.toModel(ctx, stored, opt.WithCredential)
}

// GetAll lists configs ordered by name. Disabled ones are included unless
// opt.EnabledOnly is set.
func (uc *implUseCase) GetAll(ctx context.Context, opt repoconfig.ReadOptions) ([]model.RepositoryConfig, error) {
	stored, err := uc.repo.ListConfigs(ctx, repo.ListConfigsOptions{Elevated: opt.Elevated, EnabledOnly: opt.EnabledOnly})
	if err != nil {
		uc.l.Errorf(ctx, "uc.GetAll ListConfigs: %v", err)
		return nil, err
	}

	configs := make([]model.RepositoryConfig, 0, len(stored))
	for _, s := range stored {
		c, err := uc.toModel(ctx, s, opt.WithCredential)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, nil
}

func (uc *implUseCase) GetDefault(repositoryName string) model.RepositoryConfig {
	return repoconfig.Default(repositoryName)
}
