package model

import "time"

// Document is the slice of a knowledge-base document the ledger reads.
type Document struct {
	ID        string
	Title     string
	ContentMD string
	Version   int64
	UpdatedAt time.Time
}

// ChangeKind is how proposed content modifies its target document.
type ChangeKind string

const (
	ChangeReplace ChangeKind = "replace"
	ChangeAppend  ChangeKind = "append"
	ChangePrepend ChangeKind = "prepend"
)

// Valid reports whether k is one of the known change kinds.
func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeReplace, ChangeAppend, ChangePrepend:
		return true
	}
	return false
}

// ProposalStatus is the review state of a proposal.
type ProposalStatus string

const (
	ProposalPending    ProposalStatus = "pending"
	ProposalAccepted   ProposalStatus = "accepted"
	ProposalRejected   ProposalStatus = "rejected"
	ProposalSuperseded ProposalStatus = "superseded"
)

// Proposal is a contributor's suggested change to a document.
type Proposal struct {
	ID             string
	TargetDocID    string
	AuthorID       string
	ChangeKind     ChangeKind
	Title          string
	ContentMD      string
	Rationale      string
	BaseDocVersion int64
	Status         ProposalStatus
	QualityScore   float64
	CreatedAt      time.Time
}

// UserSummary is the minimal author projection joined into listings.
type UserSummary struct {
	ID          string
	DisplayName string
	AvatarURL   string
}

// DocumentSummary is the minimal target projection joined into listings.
type DocumentSummary struct {
	ID      string
	Title   string
	Version int64
}
