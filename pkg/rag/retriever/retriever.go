package retriever

import (
	"context"

	"agentclone-be/pkg/rag/index"
)

// DefaultTopN is how many passages a retrieval returns when the caller does
// not say otherwise.
const DefaultTopN = 2

// Retriever is the seam between the orchestrator and the index technology:
// swapping the index backend never touches callers of Retrieve.
type Retriever struct {
	index index.Index
}

func New(idx index.Index) *Retriever {
	return &Retriever{index: idx}
}

// Retrieve returns the topN most relevant passages for query, most relevant
// first. topN <= 0 falls back to DefaultTopN.
func (r *Retriever) Retrieve(ctx context.Context, query string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return r.index.Query(ctx, query, topN)
}
