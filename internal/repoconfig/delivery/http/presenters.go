package http

import (
	"time"

	"kb-integration/internal/model"
	"kb-integration/internal/repoconfig"
)

// --- Request DTOs ---

type upsertReq struct {
	RepositoryName string   `json:"repository_name"`
	SourcePatterns []string `json:"source_patterns"`
	Targets        []string `json:"targets"`
	Rules          []string `json:"rules"`
	Enabled        *bool    `json:"enabled"`
	GitHubToken    *string  `json:"github_token"`
}

func (r upsertReq) validate() error {
	if r.RepositoryName == "" {
		return repoconfig.ErrRepositoryNameRequired
	}
	return nil
}

func (r upsertReq) toInput() repoconfig.UpsertInput {
	return repoconfig.UpsertInput{
		RepositoryName: r.RepositoryName,
		SourcePatterns: r.SourcePatterns,
		Targets:        r.Targets,
		Rules:          r.Rules,
		Enabled:        r.Enabled,
		GitHubToken:    r.GitHubToken,
	}
}

type listReq struct {
	EnabledOnly bool
}

// --- Response DTOs ---

// configResp never carries the credential itself.
type configResp struct {
	RepositoryName string    `json:"repository_name"`
	SourcePatterns []string  `json:"source_patterns"`
	Targets        []string  `json:"targets"`
	Rules          []string  `json:"rules"`
	Enabled        bool      `json:"enabled"`
	HasToken       bool      `json:"has_token"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newConfigResp(c model.RepositoryConfig) configResp {
	return configResp{
		RepositoryName: c.RepositoryName,
		SourcePatterns: c.SourcePatterns,
		Targets:        c.Targets,
		Rules:          c.Rules,
		Enabled:        c.Enabled,
		HasToken:       c.HasToken,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type listResp struct {
	Configs []configResp `json:"configs"`
}

func (h *handler) newListResp(configs []model.RepositoryConfig) listResp {
	out := make([]configResp, len(configs))
	for i, c := range configs {
		out[i] = newConfigResp(c)
	}
	return listResp{Configs: out}
}

type upsertResp struct {
	Config configResp `json:"config"`
}

func (h *handler) newUpsertResp(c model.RepositoryConfig) upsertResp {
	return upsertResp{Config: newConfigResp(c)}
}
