package usecase

import (
	"context"
	"errors"
	"strings"

	"kb-integration/internal/model"
	"kb-integration/internal/proposal"
	repo "kb-integration/internal/proposal/repository"
	"kb-integration/internal/quality"
)

// Create runs shape validation, the quality gate, the target lookup and the
// version check in that order. Nothing is written unless all of them pass.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input proposal.CreateInput) (model.Proposal, error) {
	if sc.UserID == "" {
		return model.Proposal{}, proposal.ErrUnauthenticated
	}
	if err := input.Validate(); err != nil {
		return model.Proposal{}, err
	}

	doc, err := uc.repo.GetDocument(ctx, strings.TrimSpace(input.TargetDocID))
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create GetDocument: %v", err)
		return model.Proposal{}, err
	}

	// The document body, when present, lets the gate spot near-verbatim copies.
	result := uc.gate.Run(ctx, quality.RunInput{Content: input.ContentMD, Reference: doc.ContentMD})
	if !result.Passed {
		return model.Proposal{}, &proposal.QualityError{Issues: result.Issues, Score: result.Score}
	}

	if doc.ID == "" {
		return model.Proposal{}, proposal.ErrDocumentNotFound
	}

	expected := doc.Version
	if input.BaseDocVersion != nil {
		if *input.BaseDocVersion != doc.Version {
			return model.Proposal{}, &proposal.ConflictError{CurrentVersion: doc.Version, YourVersion: *input.BaseDocVersion}
		}
		expected = *input.BaseDocVersion
	}

	created, err := uc.repo.CreateProposal(ctx, repo.CreateProposalOptions{
		TargetDocID:     doc.ID,
		AuthorID:        sc.UserID,
		ChangeKind:      model.ChangeKind(input.ChangeKind),
		Title:           strings.TrimSpace(input.Title),
		ContentMD:       input.ContentMD,
		Rationale:       strings.TrimSpace(input.Rationale),
		QualityScore:    result.Score,
		ExpectedVersion: expected,
		CreatedAt:       uc.now(),
	})
	if err != nil {
		var conflict *repo.VersionConflictError
		switch {
		case errors.As(err, &conflict):
			return model.Proposal{}, &proposal.ConflictError{
				CurrentVersion: conflict.CurrentVersion,
				YourVersion:    expected,
				PendingClaim:   conflict.PendingClaim,
			}
		case errors.Is(err, repo.ErrDocumentNotFound):
			return model.Proposal{}, proposal.ErrDocumentNotFound
		}
		uc.l.Errorf(ctx, "uc.Create CreateProposal: %v", err)
		return model.Proposal{}, err
	}

	uc.l.Infof(ctx, "uc.Create: proposal %s on %s@v%d by %s (score %.0f)",
		created.ID, created.TargetDocID, created.BaseDocVersion, created.AuthorID, created.QualityScore)
	return created, nil
}
