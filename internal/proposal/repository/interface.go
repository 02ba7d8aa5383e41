package repository

import (
	"context"

	"kb-integration/internal/model"
	"kb-integration/internal/proposal"
)

// Repository is the proposal ledger store.
type Repository interface {
	DocumentRepository
	ProposalRepository
}

// DocumentRepository reads the version state of knowledge-base documents.
type DocumentRepository interface {
	// GetDocument returns a zero Document (empty ID) when not found.
	GetDocument(ctx context.Context, id string) (model.Document, error)
}

// ProposalRepository defines all data access methods for Proposal.
type ProposalRepository interface {
	// CreateProposal inserts the row only while the document is still at
	// opt.ExpectedVersion. Otherwise it returns *VersionConflictError or
	// ErrDocumentNotFound and writes nothing.
	CreateProposal(ctx context.Context, opt CreateProposalOptions) (model.Proposal, error)
	ListProposals(ctx context.Context, opt ListProposalsOptions) ([]proposal.ListItem, error)
}
