package usecase

import (
	"context"

	"kb-integration/internal/proposal"
	repo "kb-integration/internal/proposal/repository"
)

// List returns newest-first proposals with their author and target projections.
func (uc *implUseCase) List(ctx context.Context, input proposal.ListInput) ([]proposal.ListItem, error) {
	input, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == proposal.StatusAll {
		status = ""
	}

	items, err := uc.repo.ListProposals(ctx, repo.ListProposalsOptions{
		Status:      status,
		AuthorID:    input.AuthorID,
		TargetDocID: input.TargetDocID,
		Limit:       input.Limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListProposals: %v", err)
		return nil, err
	}
	return items, nil
}
