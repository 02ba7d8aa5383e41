package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/internal/repoconfig"
	"kb-integration/internal/repoconfig/repository/postgre"
	"kb-integration/internal/testutil"
	"kb-integration/pkg/encrypter"
	"kb-integration/pkg/log"
)

func newTestUseCase(t *testing.T) (*implUseCase, func(query string, args ...any) int) {
	t.Helper()
	db := testutil.NewDB(t)
	enc, err := encrypter.New("test-key")
	require.NoError(t, err)

	uc := New(postgre.New(db, db, log.NewNop()), enc, log.NewNop())
	count := func(from string, args ...any) int { return testutil.Count(t, db, from, args...) }
	return uc, count
}

func ptr[T any](v T) *T { return &v }

func TestUpsert_IsIdempotent(t *testing.T) {
	uc, count := newTestUseCase(t)
	ctx := context.Background()
	input := repoconfig.UpsertInput{
		RepositoryName: "acme/api",
		SourcePatterns: []string{"docs/**/*.md"},
		Targets:        []string{"api-guide"},
		Rules:          []string{"markdown", "strip-frontmatter"},
		Enabled:        ptr(true),
	}

	first, err := uc.Upsert(ctx, input)
	require.NoError(t, err)
	second, err := uc.Upsert(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, 1, count("repository_configs WHERE repository_name = $1", "acme/api"))
	assert.Equal(t, first.SourcePatterns, second.SourcePatterns)
	assert.Equal(t, first.Targets, second.Targets)
	assert.Equal(t, first.Rules, second.Rules)
	assert.Equal(t, first.Enabled, second.Enabled)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func TestUpsert_OverwritesFields(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", Targets: []string{"old"}})
	require.NoError(t, err)
	got, err := uc.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", Targets: []string{"new"}, Enabled: ptr(false)})
	require.NoError(t, err)

	assert.Equal(t, []string{"new"}, got.Targets)
	assert.False(t, got.Enabled)

	stored, err := uc.Get(ctx, "acme/api", repoconfig.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, got.Targets, stored.Targets)
	assert.False(t, stored.Enabled)
}

func TestUpsert_FallsBackToDefaults(t *testing.T) {
	uc, _ := newTestUseCase(t)

	got, err := uc.Upsert(context.Background(), repoconfig.UpsertInput{
		RepositoryName: "acme/product-docs",
		SourcePatterns: []string{"  "},
	})
	require.NoError(t, err)

	def := repoconfig.Default("acme/product-docs")
	assert.Equal(t, def.SourcePatterns, got.SourcePatterns)
	assert.Equal(t, def.Targets, got.Targets)
	assert.Equal(t, def.Rules, got.Rules)
	assert.True(t, got.Enabled)
}

func TestUpsert_Validation(t *testing.T) {
	uc, count := newTestUseCase(t)

	_, err := uc.Upsert(context.Background(), repoconfig.UpsertInput{})
	assert.ErrorIs(t, err, repoconfig.ErrRepositoryNameRequired)

	_, err = uc.Upsert(context.Background(), repoconfig.UpsertInput{RepositoryName: "no-owner"})
	assert.ErrorIs(t, err, repoconfig.ErrInvalidRepositoryName)

	assert.Zero(t, count("repository_configs"))
}

func TestUpsert_Credential(t *testing.T) {
	uc, count := newTestUseCase(t)
	ctx := context.Background()

	got, err := uc.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", GitHubToken: ptr("ghp_secret")})
	require.NoError(t, err)
	assert.True(t, got.HasToken)
	assert.Empty(t, got.GitHubToken, "upsert must not echo the credential")
	assert.Zero(t, count("repository_configs WHERE github_token_encrypted = $1", "ghp_secret"), "stored in clear")

	// Omitting the token keeps it.
	_, err = uc.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", Rules: []string{"markdown"}})
	require.NoError(t, err)

	plain, err := uc.Get(ctx, "acme/api", repoconfig.ReadOptions{})
	require.NoError(t, err)
	assert.True(t, plain.HasToken)
	assert.Empty(t, plain.GitHubToken)

	withCred, err := uc.Get(ctx, "acme/api", repoconfig.ReadOptions{Elevated: true, WithCredential: true})
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", withCred.GitHubToken)

	// An explicit empty token clears it.
	cleared, err := uc.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: "acme/api", GitHubToken: ptr("")})
	require.NoError(t, err)
	assert.False(t, cleared.HasToken)
}

func TestGet_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Get(context.Background(), "acme/unknown", repoconfig.ReadOptions{})
	assert.ErrorIs(t, err, repoconfig.ErrConfigNotFound)
}

func TestGetAll(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	for _, name := range []string{"acme/zeta", "acme/alpha"} {
		_, err := uc.Upsert(ctx, repoconfig.UpsertInput{RepositoryName: name, Enabled: ptr(name == "acme/alpha")})
		require.NoError(t, err)
	}

	configs, err := uc.GetAll(ctx, repoconfig.ReadOptions{Elevated: true})
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "acme/alpha", configs[0].RepositoryName)
	assert.False(t, configs[1].Enabled)

	configs, err = uc.GetAll(ctx, repoconfig.ReadOptions{Elevated: true, EnabledOnly: true})
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "acme/alpha", configs[0].RepositoryName)
}

func TestEnsureDefault_StoresDefaultOnce(t *testing.T) {
	uc, count := newTestUseCase(t)
	ctx := context.Background()

	cfg, err := uc.EnsureDefault(ctx, "acme/api", repoconfig.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, repoconfig.Default("acme/api").SourcePatterns, cfg.SourcePatterns)
	assert.True(t, cfg.Enabled)

	_, err = uc.EnsureDefault(ctx, "acme/api", repoconfig.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, count("repository_configs"))
}

func TestEnsureDefault_KeepsExistingConfig(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()
	token := "ghp_admin"
	_, err := uc.Upsert(ctx, repoconfig.UpsertInput{
		RepositoryName: "acme/api",
		Targets:        []string{"handbook"},
		Enabled:        ptr(false),
		GitHubToken:    &token,
	})
	require.NoError(t, err)

	cfg, err := uc.EnsureDefault(ctx, "acme/api", repoconfig.ReadOptions{WithCredential: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"handbook"}, cfg.Targets)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "ghp_admin", cfg.GitHubToken)
}

func TestEnsureDefault_ValidatesName(t *testing.T) {
	uc, count := newTestUseCase(t)

	_, err := uc.EnsureDefault(context.Background(), "not-a-repo", repoconfig.ReadOptions{})
	assert.ErrorIs(t, err, repoconfig.ErrInvalidRepositoryName)
	assert.Zero(t, count("repository_configs"))
}

func TestGetDefault(t *testing.T) {
	uc, count := newTestUseCase(t)

	cfg := uc.GetDefault("acme/docs")

	assert.Equal(t, repoconfig.Default("acme/docs"), cfg)
	assert.Zero(t, count("repository_configs"))
}
