package model

import "time"

// DocChange records that a pull request touched a documentation source file
// and which knowledge-base target it feeds.
type DocChange struct {
	ID             string
	RepositoryName string
	PRNumber       int
	HeadSHA        string
	FilePath       string
	Target         string
	ChangeStatus   string // added, modified, renamed, ...
	Rules          []string
	DeliveryID     string
	CreatedAt      time.Time
}
