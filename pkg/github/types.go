package github

import (
	"fmt"
	"net/http"
)

const (
	DefaultBaseURL = "https://api.github.com"
	defaultPerPage = 100
	// GitHub lists at most 3000 files for a pull request.
	maxPages = 30
)

// File statuses reported by the pull request files API.
const (
	FileAdded    = "added"
	FileRemoved  = "removed"
	FileModified = "modified"
	FileRenamed  = "renamed"
)

// Config holds the GitHub API settings.
type Config struct {
	BaseURL string
	Token   string // default token when a repository has none of its own
}

// PullRequestFile is one entry of GET /repos/{owner}/{repo}/pulls/{n}/files.
type PullRequestFile struct {
	Filename         string `json:"filename"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	PreviousFilename string `json:"previous_filename,omitempty"`
}

// APIError is a non-2xx answer from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API error (%d): %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying the call may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
