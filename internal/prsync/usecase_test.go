package prsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/internal/model"
	"kb-integration/internal/prsync/repository"
	"kb-integration/internal/prsync/repository/postgre"
	"kb-integration/internal/repoconfig"
	configRepo "kb-integration/internal/repoconfig/repository/postgre"
	configUC "kb-integration/internal/repoconfig/usecase"
	"kb-integration/internal/testutil"
	"kb-integration/pkg/encrypter"
	"kb-integration/pkg/github"
	"kb-integration/pkg/log"
)

type fakeLister struct {
	mu     sync.Mutex
	files  []github.PullRequestFile
	errs   []error // returned by the first calls, in order
	calls  int
	tokens []string
}

func (f *fakeLister) ListPullRequestFiles(_ context.Context, token, _ string, _ int) ([]github.PullRequestFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.tokens = append(f.tokens, token)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.files, nil
}

type fixture struct {
	uc      UseCase
	configs repoconfig.UseCase
	changes repository.Repository
	lister  *fakeLister
}

func newFixture(t *testing.T, files ...github.PullRequestFile) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	enc, err := encrypter.New("test-key")
	require.NoError(t, err)

	configs := configUC.New(configRepo.New(db, db, log.NewNop()), enc, log.NewNop())
	changes := postgre.New(db, log.NewNop())
	lister := &fakeLister{files: files}
	uc := New(configs, lister, changes, Config{RetryAttempts: 2, RetryBase: time.Millisecond}, log.NewNop())
	return fixture{uc: uc, configs: configs, changes: changes, lister: lister}
}

func event(repo string) model.PullRequestEvent {
	return model.PullRequestEvent{
		DeliveryID:     "d-1",
		RepositoryName: repo,
		Number:         42,
		Action:         model.ActionOpened,
		HeadSHA:        "abc123",
	}
}

var prFiles = []github.PullRequestFile{
	{Filename: "docs/guide/setup.md", Status: github.FileModified},
	{Filename: "docs/old.md", Status: github.FileRemoved},
	{Filename: "README.md", Status: github.FileModified},
	{Filename: "cmd/main.go", Status: github.FileModified},
}

func TestSync_DefaultConfigCreatedLazily(t *testing.T) {
	f := newFixture(t, prFiles...)
	ctx := context.Background()

	out, err := f.uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)
	assert.Equal(t, Output{Files: 4, Matched: 2, Recorded: 2}, out)

	cfg, err := f.configs.Get(ctx, "acme/api", repoconfig.ReadOptions{Elevated: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/**/*.md", "README.md"}, cfg.SourcePatterns)

	changes, err := f.changes.ListDocChanges(ctx, repository.ListDocChangesOptions{RepositoryName: "acme/api"})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "README.md", changes[0].FilePath)
	assert.Equal(t, "docs/guide/setup.md", changes[1].FilePath)
	assert.Equal(t, "api", changes[1].Target)
	assert.Equal(t, []string{"markdown"}, changes[1].Rules)
	assert.Equal(t, "d-1", changes[1].DeliveryID)
}

// adminRacingConfigs reports the config missing, but an admin stores one
// before the processor gets to write its default.
type adminRacingConfigs struct {
	repoconfig.UseCase
	admin repoconfig.UpsertInput
	once  sync.Once
}

func (r *adminRacingConfigs) Get(ctx context.Context, name string, opt repoconfig.ReadOptions) (model.RepositoryConfig, error) {
	raced := false
	r.once.Do(func() {
		raced = true
		_, _ = r.UseCase.Upsert(ctx, r.admin)
	})
	if raced {
		return model.RepositoryConfig{}, repoconfig.ErrConfigNotFound
	}
	return r.UseCase.Get(ctx, name, opt)
}

func TestSync_DefaultNeverOverwritesAdminConfig(t *testing.T) {
	f := newFixture(t, prFiles...)
	ctx := context.Background()
	racing := &adminRacingConfigs{
		UseCase: f.configs,
		admin: repoconfig.UpsertInput{
			RepositoryName: "acme/api",
			SourcePatterns: []string{"**/*.md"},
			Targets:        []string{"handbook"},
		},
	}
	uc := New(racing, f.lister, f.changes, Config{RetryAttempts: 1, RetryBase: time.Millisecond}, log.NewNop())

	out, err := uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Matched)

	cfg, err := f.configs.Get(ctx, "acme/api", repoconfig.ReadOptions{Elevated: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.md"}, cfg.SourcePatterns)
	assert.Equal(t, []string{"handbook"}, cfg.Targets)

	changes, err := f.changes.ListDocChanges(ctx, repository.ListDocChangesOptions{RepositoryName: "acme/api"})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "handbook", changes[0].Target)
}

func TestSync_ReplayRecordsNothingNew(t *testing.T) {
	f := newFixture(t, prFiles...)
	ctx := context.Background()

	_, err := f.uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)
	out, err := f.uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)

	assert.Equal(t, 2, out.Matched)
	assert.Zero(t, out.Recorded)
}

func TestSync_EveryTarget(t *testing.T) {
	f := newFixture(t, prFiles...)
	ctx := context.Background()
	_, err := f.configs.Upsert(ctx, repoconfig.UpsertInput{
		RepositoryName: "acme/api",
		SourcePatterns: []string{"**/*.md"},
		Targets:        []string{"handbook", "api-reference"},
	})
	require.NoError(t, err)

	out, err := f.uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Matched)
	assert.Equal(t, 4, out.Recorded)
}

func TestSync_DisabledSkips(t *testing.T) {
	f := newFixture(t, prFiles...)
	ctx := context.Background()
	disabled := false
	_, err := f.configs.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", Enabled: &disabled})
	require.NoError(t, err)

	out, err := f.uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Zero(t, f.lister.calls)
}

func TestSync_UsesRepositoryCredential(t *testing.T) {
	f := newFixture(t, prFiles...)
	ctx := context.Background()
	token := "ghp_repo"
	_, err := f.configs.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", GitHubToken: &token})
	require.NoError(t, err)

	_, err = f.uc.Sync(ctx, event("acme/api"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ghp_repo"}, f.lister.tokens)
}

func TestSync_RetriesTransientErrors(t *testing.T) {
	f := newFixture(t, prFiles...)
	f.lister.errs = []error{
		&github.APIError{StatusCode: 502, Message: "bad gateway"},
		&github.APIError{StatusCode: 429, Message: "slow down"},
	}

	out, err := f.uc.Sync(context.Background(), event("acme/api"))
	require.NoError(t, err)
	assert.Equal(t, 3, f.lister.calls)
	assert.Equal(t, 2, out.Recorded)
}

func TestSync_PermanentErrorNotRetried(t *testing.T) {
	f := newFixture(t, prFiles...)
	notFound := &github.APIError{StatusCode: 404, Message: "Not Found"}
	f.lister.errs = []error{notFound}

	_, err := f.uc.Sync(context.Background(), event("acme/api"))

	var apiErr *github.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, 1, f.lister.calls)
}

func TestSync_InvalidEvent(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Sync(context.Background(), model.PullRequestEvent{RepositoryName: "acme/api"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestProcess_ReturnsSyncError(t *testing.T) {
	f := newFixture(t)
	f.lister.errs = []error{&github.APIError{StatusCode: 401, Message: "Bad credentials"}}

	assert.Error(t, f.uc.Process(context.Background(), event("acme/api")))
	assert.NoError(t, f.uc.Process(context.Background(), event("acme/api")))
}

func TestMatchSources(t *testing.T) {
	files := []github.PullRequestFile{
		{Filename: "docs/a.md", Status: github.FileAdded},
		{Filename: "docs/deep/b.mdx", Status: github.FileRenamed},
		{Filename: "docs/gone.md", Status: github.FileRemoved},
		{Filename: "src/c.go", Status: github.FileModified},
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"double star", []string{"**/*.md", "**/*.mdx"}, []string{"docs/a.md", "docs/deep/b.mdx"}},
		{"single level", []string{"docs/*.md"}, []string{"docs/a.md"}},
		{"leading slash", []string{"/docs/**"}, []string{"docs/a.md", "docs/deep/b.mdx"}},
		{"invalid pattern", []string{"docs/[.md"}, nil},
		{"none", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range matchSources(files, tt.patterns) {
				got = append(got, f.Filename)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
