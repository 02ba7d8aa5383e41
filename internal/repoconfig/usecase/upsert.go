package usecase

import (
	"context"
	"strings"

	"kb-integration/internal/model"
	"kb-integration/internal/repoconfig"
	repo "kb-integration/internal/repoconfig/repository"
)

// Upsert creates or overwrites a config. Omitted lists take the naming-convention
// default so a stored config never has empty patterns, targets or rules.
func (uc *implUseCase) Upsert(ctx context.Context, input repoconfig.UpsertInput) (model.RepositoryConfig, error) {
	name, err := validateName(input.RepositoryName)
	if err != nil {
		return model.RepositoryConfig{}, err
	}

	def := repoconfig.Default(name)
	opt := repo.UpsertConfigOptions{
		RepositoryName: name,
		SourcePatterns: orDefault(input.SourcePatterns, def.SourcePatterns),
		Targets:        orDefault(input.Targets, def.Targets),
		Rules:          orDefault(input.Rules, def.Rules),
		Enabled:        input.Enabled == nil || *input.Enabled,
	}

	if input.GitHubToken != nil {
		opt.SetToken = true
		if token := strings.TrimSpace(*input.GitHubToken); token != "" {
			sealed, err := uc.encrypter.Encrypt(token)
			if err != nil {
				uc.l.Errorf(ctx, "uc.Upsert Encrypt: %v", err)
				return model.RepositoryConfig{}, err
			}
			opt.EncryptedToken = sealed
		}
	}

	stored, err := uc.repo.UpsertConfig(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Upsert UpsertConfig: %v", err)
		return model.RepositoryConfig{}, err
	}

	uc.l.Infof(ctx, "uc.Upsert: stored config for %s (enabled=%t)", stored.RepositoryName, stored.Enabled)
	return uc.toModel(ctx, stored, false)
}

// EnsureDefault never overwrites: a config written concurrently by an admin wins.
func (uc *implUseCase) EnsureDefault(ctx context.Context, repositoryName string, opt repoconfig.ReadOptions) (model.RepositoryConfig, error) {
	name, err := validateName(repositoryName)
	if err != nil {
		return model.RepositoryConfig{}, err
	}

	def := repoconfig.Default(name)
	created, err := uc.repo.CreateConfigIfAbsent(ctx, repo.UpsertConfigOptions{
		RepositoryName: name,
		SourcePatterns: def.SourcePatterns,
		Targets:        def.Targets,
		Rules:          def.Rules,
		Enabled:        def.Enabled,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.EnsureDefault CreateConfigIfAbsent: %v", err)
		return model.RepositoryConfig{}, err
	}
	if created {
		uc.l.Infof(ctx, "uc.EnsureDefault: stored default config for %s", name)
	}

	// Reads go to the admin connection, which the insert used.
	opt.Elevated = true
	return uc.Get(ctx, name, opt)
}
