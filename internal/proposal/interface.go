package proposal

import (
	"context"

	"kb-integration/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Create validates, scores and stores a proposal. Rejections are
	// *ValidationError, *QualityError, *ConflictError or ErrDocumentNotFound.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.Proposal, error)
	List(ctx context.Context, input ListInput) ([]ListItem, error)
}
