package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
	ErrEmptyVector       = errors.New("embedding is empty")
)

type embeddingScorer struct {
	embedder Embedder
}

// NewEmbeddingScorer scores by cosine similarity of the two embeddings.
func NewEmbeddingScorer(e Embedder) Scorer {
	return &embeddingScorer{embedder: e}
}

func (s *embeddingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	vectors, err := s.embedder.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(vectors))
	}
	return Cosine(vectors[0], vectors[1])
}

// Cosine returns the cosine similarity of two vectors.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	if len(a) == 0 {
		return 0, ErrEmptyVector
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, ErrEmptyVector
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
