package repository

import (
	"time"

	"kb-integration/internal/model"
)

// CreateProposalOptions holds parameters for the conditional insert.
// The stored base version is the document's version at insert time, which
// equals ExpectedVersion.
type CreateProposalOptions struct {
	TargetDocID     string
	AuthorID        string
	ChangeKind      model.ChangeKind
	Title           string
	ContentMD       string
	Rationale       string
	QualityScore    float64
	ExpectedVersion int64
	CreatedAt       time.Time
}

// ListProposalsOptions filters proposals. Empty fields are not applied.
type ListProposalsOptions struct {
	Status      string
	AuthorID    string
	TargetDocID string
	Limit       int
}
