package http

import (
	"time"

	"kb-integration/internal/model"
	"kb-integration/internal/proposal"
)

// --- Request DTOs ---

type createReq struct {
	TargetDocID    string `json:"targetDocId"`
	ChangeKind     string `json:"changeKind"`
	Title          string `json:"title"`
	ContentMD      string `json:"contentMd"`
	Rationale      string `json:"rationale"`
	BaseDocVersion *int64 `json:"baseDocVersion"`
}

func (r createReq) toInput() proposal.CreateInput {
	return proposal.CreateInput{
		TargetDocID:    r.TargetDocID,
		ChangeKind:     r.ChangeKind,
		Title:          r.Title,
		ContentMD:      r.ContentMD,
		Rationale:      r.Rationale,
		BaseDocVersion: r.BaseDocVersion,
	}
}

type listReq struct {
	Status      string
	Limit       int
	AuthorID    string
	TargetDocID string
}

func (r listReq) toInput() proposal.ListInput {
	return proposal.ListInput{
		Status:      r.Status,
		AuthorID:    r.AuthorID,
		TargetDocID: r.TargetDocID,
		Limit:       r.Limit,
	}
}

// --- Response DTOs ---

type proposalResp struct {
	ID             string    `json:"id"`
	TargetDocID    string    `json:"targetDocId"`
	AuthorID       string    `json:"authorId"`
	ChangeKind     string    `json:"changeKind"`
	Title          string    `json:"title"`
	ContentMD      string    `json:"contentMd"`
	Rationale      string    `json:"rationale"`
	BaseDocVersion int64     `json:"baseDocVersion"`
	Status         string    `json:"status"`
	QualityScore   float64   `json:"qualityScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newProposalResp(p model.Proposal) proposalResp {
	return proposalResp{
		ID:             p.ID,
		TargetDocID:    p.TargetDocID,
		AuthorID:       p.AuthorID,
		ChangeKind:     string(p.ChangeKind),
		Title:          p.Title,
		ContentMD:      p.ContentMD,
		Rationale:      p.Rationale,
		BaseDocVersion: p.BaseDocVersion,
		Status:         string(p.Status),
		QualityScore:   p.QualityScore,
		CreatedAt:      p.CreatedAt,
	}
}

type authorResp struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

type targetDocResp struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version int64  `json:"version"`
}

type listItemResp struct {
	Proposal  proposalResp  `json:"proposal"`
	Author    authorResp    `json:"author"`
	TargetDoc targetDocResp `json:"targetDoc"`
}

func (h *handler) newListResp(items []proposal.ListItem) []listItemResp {
	out := make([]listItemResp, len(items))
	for i, it := range items {
		out[i] = listItemResp{
			Proposal: newProposalResp(it.Proposal),
			Author: authorResp{
				ID:          it.Author.ID,
				DisplayName: it.Author.DisplayName,
				AvatarURL:   it.Author.AvatarURL,
			},
			TargetDoc: targetDocResp{
				ID:      it.TargetDoc.ID,
				Title:   it.TargetDoc.Title,
				Version: it.TargetDoc.Version,
			},
		}
	}
	return out
}
