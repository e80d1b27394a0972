package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"agentclone-be/pkg/embedding"
)

// filePassage is one stored (passage, vector) pair.
type filePassage struct {
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
}

// FileIndex is a flat-file vector index: a JSON snapshot on disk plus
// brute-force cosine search in memory. Add and Query share one mutex, so
// ingestion is exclusive with queries.
type FileIndex struct {
	mu        sync.RWMutex
	path      string
	embedder  embedding.EmbeddingProvider
	dimension int
	passages  []filePassage
}

func NewFileIndex(path string, embedder embedding.EmbeddingProvider, dimension int) (*FileIndex, error) {
	idx := &FileIndex{
		path:      path,
		embedder:  embedder,
		dimension: dimension,
	}
	if err := idx.load(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *FileIndex) load() error {
	data, err := os.ReadFile(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // fresh index
		}
		return fmt.Errorf("read index snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &idx.passages); err != nil {
		return fmt.Errorf("parse index snapshot %s: %w", idx.path, err)
	}
	return nil
}

// persist writes the snapshot atomically (tmp file + rename) so a crash
// mid-write cannot corrupt the index.
func (idx *FileIndex) persist() error {
	data, err := json.Marshal(idx.passages)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(idx.path), 0755); err != nil {
		return err
	}
	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, idx.path)
}

func (idx *FileIndex) Add(ctx context.Context, passages []string) error {
	if len(passages) == 0 {
		return nil
	}

	// Embed everything before touching state: all-or-nothing.
	vectors, err := idx.embedder.Embed(ctx, passages)
	if err != nil {
		return err
	}
	if len(vectors) != len(passages) {
		return fmt.Errorf("embedder returned %d vectors for %d passages", len(vectors), len(passages))
	}
	if err := checkDimension(vectors, idx.dimension); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	appended := idx.passages
	for i, p := range passages {
		appended = append(appended, filePassage{Content: p, Embedding: vectors[i]})
	}

	previous := idx.passages
	idx.passages = appended
	if err := idx.persist(); err != nil {
		idx.passages = previous
		return fmt.Errorf("persist index: %w", err)
	}
	return nil
}

func (idx *FileIndex) Query(ctx context.Context, text string, k int) ([]string, error) {
	idx.mu.RLock()
	empty := len(idx.passages) == 0
	idx.mu.RUnlock()
	if empty {
		return []string{}, nil
	}

	vectors, err := idx.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	queryVec := vectors[0]

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		position int
		score    float64
	}
	results := make([]scored, len(idx.passages))
	for i, p := range idx.passages {
		results[i] = scored{position: i, score: cosine(queryVec, p.Embedding)}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	if k < 0 {
		k = 0
	}
	out := make([]string, 0, k)
	for _, r := range results[:k] {
		out = append(out, idx.passages[r.position].Content)
	}
	return out, nil
}

func (idx *FileIndex) Count(ctx context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.passages), nil
}
