package prsync

import (
	"context"
	"errors"
	"net"

	"github.com/sethvargo/go-retry"

	"kb-integration/internal/model"
	"kb-integration/internal/prsync/repository"
	"kb-integration/internal/repoconfig"
	"kb-integration/pkg/github"
)

// Process implements webhook.Processor.
func (uc *implUseCase) Process(ctx context.Context, event model.PullRequestEvent) error {
	out, err := uc.Sync(ctx, event)
	if err != nil {
		return err
	}

	if out.Skipped {
		uc.l.Infof(ctx, "prsync.Process: %s#%d skipped, repository disabled", event.RepositoryName, event.Number)
		return nil
	}
	uc.l.Infof(ctx, "prsync.Process: %s#%d files=%d matched=%d recorded=%d",
		event.RepositoryName, event.Number, out.Files, out.Matched, out.Recorded)
	return nil
}

// Sync resolves the repository config, lists the pull request files and
// records one doc change per matching file and target.
func (uc *implUseCase) Sync(ctx context.Context, event model.PullRequestEvent) (Output, error) {
	if event.RepositoryName == "" || event.Number <= 0 {
		return Output{}, ErrInvalidEvent
	}

	cfg, err := uc.resolveConfig(ctx, event.RepositoryName)
	if err != nil {
		return Output{}, err
	}
	if !cfg.Enabled {
		return Output{Skipped: true}, nil
	}

	files, err := uc.listFiles(ctx, cfg, event)
	if err != nil {
		uc.l.Errorf(ctx, "prsync.Sync listFiles %s#%d: %v", event.RepositoryName, event.Number, err)
		return Output{}, err
	}

	matched := matchSources(files, cfg.SourcePatterns)
	out := Output{Files: len(files), Matched: len(matched)}
	if len(matched) == 0 || len(cfg.Targets) == 0 {
		return out, nil
	}

	now := uc.now()
	changes := make([]repository.CreateDocChangeOptions, 0, len(matched)*len(cfg.Targets))
	for _, f := range matched {
		for _, target := range cfg.Targets {
			changes = append(changes, repository.CreateDocChangeOptions{
				RepositoryName: cfg.RepositoryName,
				PRNumber:       event.Number,
				HeadSHA:        event.HeadSHA,
				FilePath:       f.Filename,
				Target:         target,
				ChangeStatus:   f.Status,
				Rules:          cfg.Rules,
				DeliveryID:     event.DeliveryID,
				CreatedAt:      now,
			})
		}
	}

	out.Recorded, err = uc.repo.CreateDocChanges(ctx, changes)
	if err != nil {
		uc.l.Errorf(ctx, "prsync.Sync CreateDocChanges: %v", err)
		return out, err
	}
	return out, nil
}

// resolveConfig reads the stored config with its credential, creating the
// naming-convention default on first reference.
func (uc *implUseCase) resolveConfig(ctx context.Context, name string) (model.RepositoryConfig, error) {
	opt := repoconfig.ReadOptions{Elevated: true, WithCredential: true}

	cfg, err := uc.configs.Get(ctx, name, opt)
	if errors.Is(err, repoconfig.ErrConfigNotFound) {
		uc.l.Infof(ctx, "prsync.resolveConfig %s: no config, storing default", name)
		cfg, err = uc.configs.EnsureDefault(ctx, name, opt)
	}
	if errors.Is(err, repoconfig.ErrCredentialUnavailable) {
		uc.l.Warnf(ctx, "prsync.resolveConfig %s: stored credential unreadable, using default token", name)
		return uc.configs.Get(ctx, name, repoconfig.ReadOptions{Elevated: true})
	}
	if err != nil {
		return model.RepositoryConfig{}, err
	}
	return cfg, nil
}

func (uc *implUseCase) listFiles(ctx context.Context, cfg model.RepositoryConfig, event model.PullRequestEvent) ([]github.PullRequestFile, error) {
	backoff := retry.WithMaxRetries(uc.cfg.RetryAttempts, retry.NewExponential(uc.cfg.RetryBase))

	var files []github.PullRequestFile
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		got, err := uc.files.ListPullRequestFiles(ctx, cfg.GitHubToken, cfg.RepositoryName, event.Number)
		if err != nil {
			if isTransient(err) {
				uc.l.Warnf(ctx, "prsync.listFiles %s#%d: %v, retrying", cfg.RepositoryName, event.Number, err)
				return retry.RetryableError(err)
			}
			return err
		}
		files = got
		return nil
	})
	return files, err
}

func isTransient(err error) bool {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
