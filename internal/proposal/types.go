package proposal

import "kb-integration/internal/model"

// Submission bounds, in characters after trimming.
const (
	TitleMinLen     = 5
	TitleMaxLen     = 200
	ContentMinLen   = 50
	ContentMaxLen   = 100000
	RationaleMinLen = 10
	RationaleMaxLen = 2000

	DefaultListLimit = 10
	MaxListLimit     = 100

	// StatusAll disables the status filter of List.
	StatusAll = "all"
)

// CreateInput is a proposal candidate. BaseDocVersion is nil when the author
// did not state the version they edited.
type CreateInput struct {
	TargetDocID    string
	ChangeKind     string
	Title          string
	ContentMD      string
	Rationale      string
	BaseDocVersion *int64
}

// ListInput filters a listing. Status defaults to pending; StatusAll lists every status.
type ListInput struct {
	Status      string
	AuthorID    string
	TargetDocID string
	Limit       int
}

// ListItem is a proposal with its minimal author and target projections.
type ListItem struct {
	Proposal  model.Proposal
	Author    model.UserSummary
	TargetDoc model.DocumentSummary
}
