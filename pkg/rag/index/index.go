package index

import (
	"context"
)

// Index stores (passage, embedding) pairs and answers nearest-neighbor
// queries. Passages are append-only; an index is never mutated in place.
type Index interface {
	// Add embeds every passage and appends the pairs to storage. All
	// embeddings are computed before anything is committed, so a provider
	// failure leaves the index untouched.
	Add(ctx context.Context, passages []string) error

	// Query embeds text and returns the k most similar passages by cosine
	// similarity, ties broken by insertion order (earliest first). A
	// never-populated index returns an empty result, not an error.
	Query(ctx context.Context, text string, k int) ([]string, error)

	// Count reports how many passages the index holds.
	Count(ctx context.Context) (int, error)
}

// Provider hands out the index for a corpus scope. With shared scoping every
// caller receives the same corpus; with per-persona scoping each persona has
// its own.
type Provider interface {
	For(scope string) (Index, error)
}

// SharedScope is the corpus key used when all personas search one index.
const SharedScope = "shared"
