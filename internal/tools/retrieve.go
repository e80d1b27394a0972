package tools

import (
	"context"
	"fmt"
	"strings"

	"agentclone-be/pkg/rag/index"
	"agentclone-be/pkg/rag/retriever"
)

// RetrieveDocumentsName is the only capability in the current registry.
const RetrieveDocumentsName = "retrieve_documents"

// RetrieveDocumentsTool fetches relevant passages from the embedding index
// when the model asks for grounding material mid-conversation. The corpus
// scope is injected into the arguments by the orchestrator, never by the
// model.
type RetrieveDocumentsTool struct {
	indexes index.Provider
	topN    int
}

func NewRetrieveDocumentsTool(indexes index.Provider, topN int) *RetrieveDocumentsTool {
	return &RetrieveDocumentsTool{
		indexes: indexes,
		topN:    topN,
	}
}

func (t *RetrieveDocumentsTool) Name() string {
	return RetrieveDocumentsName
}

func (t *RetrieveDocumentsTool) Description() string {
	return "Fetch relevant text from indexed documents."
}

func (t *RetrieveDocumentsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type": "string",
			},
		},
		"required": []string{"query"},
	}
}

func (t *RetrieveDocumentsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", fmt.Errorf("retrieve_documents requires a non-empty query argument")
	}

	scope, _ := args["scope"].(string)
	if scope == "" {
		scope = index.SharedScope
	}

	idx, err := t.indexes.For(scope)
	if err != nil {
		return "", err
	}

	passages, err := retriever.New(idx).Retrieve(ctx, query, t.topN)
	if err != nil {
		return "", err
	}
	if len(passages) == 0 {
		return "No matching documents were found.", nil
	}
	return strings.Join(passages, "\n\n"), nil
}
