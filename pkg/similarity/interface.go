// Package similarity scores how alike two text bodies are using embedding models.
package similarity

import "context"

// Scorer returns a semantic similarity in [-1, 1] for two bodies.
type Scorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Embedder turns texts into vectors, one per text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
