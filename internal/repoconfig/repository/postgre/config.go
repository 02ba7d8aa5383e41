package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	repo "kb-integration/internal/repoconfig/repository"
)

const configColumns = `repository_name, source_patterns, targets, rules, enabled, github_token_encrypted, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (repo.StoredConfig, error) {
	var (
		c                        repo.StoredConfig
		patterns, targets, rules string
	)
	err := row.Scan(&c.RepositoryName, &patterns, &targets, &rules, &c.Enabled, &c.EncryptedToken, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return repo.StoredConfig{}, err
	}

	for _, f := range []struct {
		raw string
		dst *[]string
	}{{patterns, &c.SourcePatterns}, {targets, &c.Targets}, {rules, &c.Rules}} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return repo.StoredConfig{}, fmt.Errorf("decode list column: %w", err)
		}
	}
	c.HasToken = c.EncryptedToken != ""
	return c, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

// UpsertConfig writes the row on the admin connection. created_at survives overwrites.
func (r *implRepository) UpsertConfig(ctx context.Context, opt repo.UpsertConfigOptions) (repo.StoredConfig, error) {
	const query = `
		INSERT INTO repository_configs (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (repository_name) DO UPDATE SET
			source_patterns = excluded.source_patterns,
			targets         = excluded.targets,
			rules           = excluded.rules,
			enabled         = excluded.enabled,
			github_token_encrypted = CASE WHEN $8 THEN excluded.github_token_encrypted
			                              ELSE repository_configs.github_token_encrypted END,
			updated_at      = excluded.updated_at
		RETURNING ` + configColumns

	patterns, err := encodeList(opt.SourcePatterns)
	if err != nil {
		return repo.StoredConfig{}, err
	}
	targets, err := encodeList(opt.Targets)
	if err != nil {
		return repo.StoredConfig{}, err
	}
	rules, err := encodeList(opt.Rules)
	if err != nil {
		return repo.StoredConfig{}, err
	}

	token := ""
	if opt.SetToken {
		token = opt.EncryptedToken
	}

	row := r.adminDB.QueryRowContext(ctx, query,
		opt.RepositoryName, patterns, targets, rules, opt.Enabled, token, time.Now().UTC(), opt.SetToken,
	)
	c, err := scanConfig(row)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertConfig"), err)
		return repo.StoredConfig{}, repo.ErrFailedToUpsert
	}
	return c, nil
}

func (r *implRepository) CreateConfigIfAbsent(ctx context.Context, opt repo.UpsertConfigOptions) (bool, error) {
	const query = `
		INSERT INTO repository_configs (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (repository_name) DO NOTHING`

	patterns, err := encodeList(opt.SourcePatterns)
	if err != nil {
		return false, err
	}
	targets, err := encodeList(opt.Targets)
	if err != nil {
		return false, err
	}
	rules, err := encodeList(opt.Rules)
	if err != nil {
		return false, err
	}

	res, err := r.adminDB.ExecContext(ctx, query,
		opt.RepositoryName, patterns, targets, rules, opt.Enabled, opt.EncryptedToken, time.Now().UTC(),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateConfigIfAbsent"), err)
		return false, repo.ErrFailedToUpsert
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("CreateConfigIfAbsent"), err)
		return false, repo.ErrFailedToUpsert
	}
	return n == 1, nil
}

func (r *implRepository) GetOneConfig(ctx context.Context, opt repo.GetOneConfigOptions) (repo.StoredConfig, error) {
	query := `SELECT ` + configColumns + ` FROM repository_configs WHERE repository_name = $1`

	c, err := scanConfig(r.conn(opt.Elevated).QueryRowContext(ctx, query, opt.RepositoryName))
	if errors.Is(err, sql.ErrNoRows) {
		return repo.StoredConfig{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneConfig"), err)
		return repo.StoredConfig{}, repo.ErrFailedToGet
	}
	return c, nil
}

func (r *implRepository) ListConfigs(ctx context.Context, opt repo.ListConfigsOptions) ([]repo.StoredConfig, error) {
	query := `SELECT ` + configColumns + ` FROM repository_configs`
	var args []any
	if opt.EnabledOnly {
		args = append(args, true)
		query += ` WHERE enabled = $1`
	}
	query += ` ORDER BY repository_name`

	rows, err := r.conn(opt.Elevated).QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListConfigs"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	configs := []repo.StoredConfig{}
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListConfigs"), err)
			return nil, repo.ErrFailedToList
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListConfigs"), err)
		return nil, repo.ErrFailedToList
	}
	return configs, nil
}
