package repository

import "time"

// CreateDocChangeOptions is one (file, target) pair produced by a pull request head.
type CreateDocChangeOptions struct {
	RepositoryName string
	PRNumber       int
	HeadSHA        string
	FilePath       string
	Target         string
	ChangeStatus   string
	Rules          []string
	DeliveryID     string
	CreatedAt      time.Time
}

// ListDocChangesOptions filters doc changes. Zero values match everything.
type ListDocChangesOptions struct {
	RepositoryName string
	PRNumber       int
}
