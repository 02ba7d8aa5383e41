package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client is a minimal GitHub REST client.
type Client struct {
	baseURL string
	token   string
	perPage int
	timeout time.Duration
}

// New creates a Client authenticated with cfg.Token, if any.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		perPage: defaultPerPage,
		timeout: 30 * time.Second,
	}
}

// httpClient returns an oauth2 client for token, or a plain one when token is empty.
func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		token = c.token
	}
	if token == "" {
		return &http.Client{Timeout: c.timeout}
	}

	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = c.timeout
	return hc
}

// ListPullRequestFiles returns every file changed by the pull request, following pagination.
// token overrides the client's default token when set.
func (c *Client) ListPullRequestFiles(ctx context.Context, token, repository string, number int) ([]PullRequestFile, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository name %q", repository)
	}

	hc := c.httpClient(ctx, token)

	var files []PullRequestFile
	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files?per_page=%d&page=%d", c.baseURL, owner, repo, number, c.perPage, page)

		batch, err := c.getFiles(ctx, hc, url)
		if err != nil {
			return nil, err
		}
		files = append(files, batch...)

		if len(batch) < c.perPage {
			break
		}
	}

	return files, nil
}

func (c *Client) getFiles(ctx context.Context, hc *http.Client, url string) ([]PullRequestFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, apiErr
	}

	var files []PullRequestFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return files, nil
}
