package similarity

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"

	"kb-integration/pkg/voyage"
)

type retryingScorer struct {
	next     Scorer
	attempts uint64
	base     time.Duration
}

// WithRetry retries transient scorer failures with exponential backoff.
// attempts counts retries after the first call.
func WithRetry(next Scorer, attempts uint64, base time.Duration) Scorer {
	if base <= 0 {
		base = 200 * time.Millisecond
	}
	return &retryingScorer{next: next, attempts: attempts, base: base}
}

func (s *retryingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	backoff := retry.WithMaxRetries(s.attempts, retry.NewExponential(s.base))

	var score float64
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := s.next.Score(ctx, a, b)
		if err != nil {
			if isTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		score = v
		return nil
	})
	return score, err
}

// isTransient reports throttling, server errors and network failures.
func isTransient(err error) bool {
	var voyageErr *voyage.APIError
	if errors.As(err, &voyageErr) {
		return voyageErr.Temporary()
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return openaiErr.HTTPStatusCode == http.StatusTooManyRequests || openaiErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	if errors.Is(err, ErrDimensionMismatch) || errors.Is(err, ErrEmptyVector) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
