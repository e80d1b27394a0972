package embedding

import (
	"context"
	"math"
)

// EmbeddingProvider turns text into fixed-length float vectors, one per
// input, same order. Vectors must be stable enough for nearest-neighbor
// search to be meaningful. Implementations honor ctx cancellation and
// deadlines on every network call.
type EmbeddingProvider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine similarity over the index assumes normalized vectors.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
