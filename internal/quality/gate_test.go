package quality

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/pkg/log"
)

const goodDoc = "# Deploying the service\n\nThe service ships as a container image built by CI.\n\n" +
	"Run `make deploy` from a clean checkout to roll out the latest tag.\n\n" +
	"```sh\nmake deploy\n```\n\nSee [the runbook](https://wiki.example/runbook) for rollback steps.\n"

type fixedScorer struct {
	score float64
	err   error
	calls int
}

func (f *fixedScorer) Score(context.Context, string, string) (float64, error) {
	f.calls++
	return f.score, f.err
}

func TestRun_CleanContentPasses(t *testing.T) {
	g := New(Config{}, nil, log.NewNop())

	res := g.Run(context.Background(), RunInput{Content: goodDoc})

	assert.True(t, res.Passed)
	assert.Empty(t, res.Issues)
	assert.Equal(t, float64(100), res.Score)
}

func TestRun_Heuristics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		issue   string
	}{
		{name: "too short", content: "# Hi\n\nshort", issue: "too short"},
		{name: "no heading", content: strings.Replace(goodDoc, "# Deploying", "Deploying", 1), issue: "no markdown heading"},
		{name: "single paragraph", content: "# Title that is long enough to count for the length check here ok", issue: "single paragraph"},
		{name: "unbalanced fence", content: goodDoc + "\n```go\nfunc main() {}\n", issue: "code fences"},
		{name: "placeholder", content: goodDoc + "\nTODO: fill in the rollback section.\n", issue: "placeholder"},
		{name: "shouting", content: "# TITLE\n\nTHIS WHOLE SECTION IS WRITTEN IN CAPITAL LETTERS.\n\nREALLY LOUD TEXT HERE.", issue: "uppercase"},
		{name: "broken link", content: goodDoc + "\nAlso see [the guide]().\n", issue: "broken link"},
		{name: "repeated lines", content: "# Notes\n\nsame line here\nsame line here\nsame line here\nsame line here\n\nend of the notes section.", issue: "repeats"},
	}

	g := New(Config{}, nil, log.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Run(context.Background(), RunInput{Content: tt.content})
			require.NotEmpty(t, res.Issues)
			found := false
			for _, issue := range res.Issues {
				if strings.Contains(issue, tt.issue) {
					found = true
				}
			}
			assert.True(t, found, "issues %v should mention %q", res.Issues, tt.issue)
			assert.Less(t, res.Score, float64(100))
		})
	}
}

func TestRun_BelowThresholdFails(t *testing.T) {
	g := New(Config{}, nil, log.NewNop())

	res := g.Run(context.Background(), RunInput{Content: "TODO TBD ```"})

	assert.False(t, res.Passed)
	assert.Less(t, res.Score, float64(DefaultThreshold))
	assert.NotEmpty(t, res.Issues)
}

func TestRun_Deterministic(t *testing.T) {
	g := New(Config{}, nil, log.NewNop())
	content := "no heading here\nTODO later"

	first := g.Run(context.Background(), RunInput{Content: content})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.Run(context.Background(), RunInput{Content: content}))
	}
}

func TestRun_NearDuplicate(t *testing.T) {
	scorer := &fixedScorer{score: 0.99}
	g := New(Config{}, scorer, log.NewNop())

	res := g.Run(context.Background(), RunInput{Content: goodDoc, Reference: goodDoc})

	assert.Contains(t, res.Issues, issueNearDuplicate)
	assert.Equal(t, float64(70), res.Score)
	assert.True(t, res.Passed)
	assert.Equal(t, 1, scorer.calls)
}

func TestRun_ScorerFailureIsSkipped(t *testing.T) {
	scorer := &fixedScorer{err: errors.New("model unavailable")}
	g := New(Config{}, scorer, log.NewNop())

	res := g.Run(context.Background(), RunInput{Content: goodDoc, Reference: "# Old\n\nsomething"})

	assert.True(t, res.Passed)
	assert.Empty(t, res.Issues)
}

func TestRun_NoReferenceSkipsScorer(t *testing.T) {
	scorer := &fixedScorer{score: 1}
	g := New(Config{}, scorer, log.NewNop())

	g.Run(context.Background(), RunInput{Content: goodDoc})

	assert.Zero(t, scorer.calls)
}

func TestRun_CustomThreshold(t *testing.T) {
	g := New(Config{Threshold: 95}, nil, log.NewNop())

	res := g.Run(context.Background(), RunInput{Content: strings.Replace(goodDoc, "# Deploying", "Deploying", 1)})

	assert.Equal(t, float64(85), res.Score)
	assert.False(t, res.Passed)
}

func TestRun_ThresholdAboveMaxScoreIsCapped(t *testing.T) {
	g := New(Config{Threshold: 120}, nil, log.NewNop())

	res := g.Run(context.Background(), RunInput{Content: goodDoc})

	assert.True(t, res.Passed)
	assert.Empty(t, res.Issues)
	assert.Equal(t, float64(100), res.Score)
}
