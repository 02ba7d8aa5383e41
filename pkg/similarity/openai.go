package similarity

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type openAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder embeds with the OpenAI embeddings API. An empty baseURL
// uses the public endpoint.
func NewOpenAIEmbedder(apiKey, model, baseURL string) (Embedder, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	m := openai.SmallEmbedding3
	if model != "" {
		m = openai.EmbeddingModel(model)
	}

	return &openAIEmbedder{client: openai.NewClientWithConfig(cfg), model: m}, nil
}

func (e *openAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("openai returned out-of-range index %d", data.Index)
		}
		embeddings[data.Index] = data.Embedding
	}
	return embeddings, nil
}
