package similarity

import (
	"fmt"
	"time"

	"kb-integration/pkg/voyage"
)

// Providers.
const (
	ProviderNone   = "none"
	ProviderVoyage = "voyage"
	ProviderOpenAI = "openai"
)

// Config selects and tunes the embedding provider.
type Config struct {
	Provider      string
	APIKey        string
	Model         string
	BaseURL       string
	RetryAttempts uint64
	RetryBase     time.Duration
}

// New builds the configured scorer wrapped with retries. It returns nil for
// ProviderNone so callers can skip the similarity check.
func New(cfg Config) (Scorer, error) {
	var embedder Embedder

	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderVoyage:
		client, err := voyage.New(cfg.APIKey)
		if err != nil {
			return nil, err
		}
		embedder = client.WithModel(cfg.Model).WithBaseURL(cfg.BaseURL)
	case ProviderOpenAI:
		e, err := NewOpenAIEmbedder(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		embedder = e
	default:
		return nil, fmt.Errorf("unknown similarity provider %q", cfg.Provider)
	}

	return WithRetry(NewEmbeddingScorer(embedder), cfg.RetryAttempts, cfg.RetryBase), nil
}
