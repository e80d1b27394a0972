package index

import (
	"fmt"
	"math"

	"agentclone-be/internal/apperror"
)

// checkDimension rejects vectors that do not match the configured embedding
// dimensionality. want <= 0 disables the check.
func checkDimension(vectors [][]float32, want int) error {
	if want <= 0 {
		return nil
	}
	for _, v := range vectors {
		if len(v) != want {
			return fmt.Errorf("%w: embedding dimension %d, index expects %d", apperror.ErrEmbeddingProvider, len(v), want)
		}
	}
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
