package proposal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"kb-integration/internal/model"
)

// Validate checks the shape of a submission without touching the store.
func (in CreateInput) Validate() error {
	var problems []string

	if strings.TrimSpace(in.TargetDocID) == "" {
		problems = append(problems, "targetDocId is required")
	}
	if !model.ChangeKind(in.ChangeKind).Valid() {
		problems = append(problems, "changeKind must be one of replace, append, prepend")
	}
	problems = appendLength(problems, "title", in.Title, TitleMinLen, TitleMaxLen)
	problems = appendLength(problems, "contentMd", in.ContentMD, ContentMinLen, ContentMaxLen)
	problems = appendLength(problems, "rationale", in.Rationale, RationaleMinLen, RationaleMaxLen)
	if in.BaseDocVersion != nil && *in.BaseDocVersion < 1 {
		problems = append(problems, "baseDocVersion must be at least 1")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func appendLength(problems []string, field, value string, minLen, maxLen int) []string {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < minLen || n > maxLen {
		return append(problems, fmt.Sprintf("%s must be between %d and %d characters", field, minLen, maxLen))
	}
	return problems
}

// Normalize applies the listing defaults and checks the status filter.
func (in ListInput) Normalize() (ListInput, error) {
	switch in.Status {
	case "":
		in.Status = string(model.ProposalPending)
	case StatusAll:
	case string(model.ProposalPending), string(model.ProposalAccepted), string(model.ProposalRejected), string(model.ProposalSuperseded):
	default:
		return in, ErrInvalidStatus
	}

	switch {
	case in.Limit == 0:
		in.Limit = DefaultListLimit
	case in.Limit < 1:
		in.Limit = 1
	case in.Limit > MaxListLimit:
		in.Limit = MaxListLimit
	}
	return in, nil
}
