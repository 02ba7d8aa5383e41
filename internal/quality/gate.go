package quality

import (
	"context"
	"strings"

	"kb-integration/pkg/log"
	"kb-integration/pkg/similarity"
)

const issueNearDuplicate = "content is nearly identical to the current document"

type implGate struct {
	cfg    Config
	scorer similarity.Scorer
	l      log.Logger
}

// New creates a Gate. scorer may be nil, which disables the near-duplicate check.
func New(cfg Config, scorer similarity.Scorer, l log.Logger) Gate {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	// Issue-free content scores maxScore and must always pass.
	cfg.Threshold = min(cfg.Threshold, maxScore)
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if cfg.DuplicateThreshold <= 0 {
		cfg.DuplicateThreshold = DefaultDuplicateThreshold
	}
	return &implGate{cfg: cfg, scorer: scorer, l: l}
}

// Run applies every heuristic. A failing similarity collaborator is logged and
// its check skipped; it never fails the gate by itself.
func (g *implGate) Run(ctx context.Context, input RunInput) Result {
	score := float64(maxScore)
	issues := []string{}

	for _, c := range checks {
		if issue, penalty := c(input.Content, g.cfg); issue != "" {
			issues = append(issues, issue)
			score -= penalty
		}
	}

	if g.scorer != nil && strings.TrimSpace(input.Reference) != "" {
		sim, err := g.scorer.Score(ctx, input.Content, input.Reference)
		switch {
		case err != nil:
			g.l.Warnf(ctx, "quality.Run: similarity check skipped: %v", err)
		case sim >= g.cfg.DuplicateThreshold:
			issues = append(issues, issueNearDuplicate)
			score -= penaltyNearDuplicate
		}
	}

	score = max(score, 0)
	return Result{
		Passed: score >= g.cfg.Threshold,
		Issues: issues,
		Score:  score,
	}
}
