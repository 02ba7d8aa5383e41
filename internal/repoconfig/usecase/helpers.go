package usecase

import (
	"context"
	"strings"

	"kb-integration/internal/model"
	"kb-integration/internal/repoconfig"
	repo "kb-integration/internal/repoconfig/repository"
)

// orDefault drops blank entries and falls back to def when nothing is left.
func orDefault(values, def []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

// toModel decrypts the credential only when asked to.
func (uc *implUseCase) toModel(ctx context.Context, s repo.StoredConfig, withCredential bool) (model.RepositoryConfig, error) {
	c := s.RepositoryConfig
	c.GitHubToken = ""
	if !withCredential || s.EncryptedToken == "" {
		return c, nil
	}

	token, err := uc.encrypter.Decrypt(s.EncryptedToken)
	if err != nil {
		uc.l.Errorf(ctx, "uc.toModel Decrypt %s: %v", s.RepositoryName, err)
		return model.RepositoryConfig{}, repoconfig.ErrCredentialUnavailable
	}
	c.GitHubToken = token
	return c, nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", repoconfig.ErrRepositoryNameRequired
	}
	if owner, repoName, ok := strings.Cut(name, "/"); !ok || owner == "" || repoName == "" || strings.Contains(repoName, "/") {
		return "", repoconfig.ErrInvalidRepositoryName
	}
	return name, nil
}
