// Package embedding wraps text-embedding backends behind a common
// Provider interface and exposes cosine similarity on top of them.
package embedding

import (
	"context"
	"math"
)

// Provider is the core abstraction for text embedding.
type Provider interface {
	// Embed generates one fixed-length dense vector per input text.
	// The returned slice has the same length and order as texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Cosine returns the cosine similarity of two vectors.
// Returns 0 for mismatched lengths or zero-norm inputs.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		normA += fa * fa
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Similarity embeds both texts in a single batched call and returns
// their cosine similarity. Deterministic for a fixed model and inputs.
func Similarity(ctx context.Context, p Provider, a, b string) (float64, error) {
	vecs, err := p.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(vecs) != 2 {
		return 0, &ErrInvalidEmbedding{Count: len(vecs)}
	}
	return Cosine(vecs[0], vecs[1]), nil
}
