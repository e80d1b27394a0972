package index

import (
	"fmt"
	"path/filepath"
	"sync"

	"agentclone-be/pkg/embedding"

	"gorm.io/gorm"
)

const (
	BackendFile     = "file"
	BackendPgvector = "pgvector"
)

// Factory builds and caches one Index per corpus scope for the configured
// backend. It implements Provider.
type Factory struct {
	mu        sync.Mutex
	backend   string
	dataDir   string
	db        *gorm.DB // nil unless backend is pgvector
	embedder  embedding.EmbeddingProvider
	dimension int
	indexes   map[string]Index
}

func NewFactory(backend, dataDir string, db *gorm.DB, embedder embedding.EmbeddingProvider, dimension int) *Factory {
	return &Factory{
		backend:   backend,
		dataDir:   dataDir,
		db:        db,
		embedder:  embedder,
		dimension: dimension,
		indexes:   make(map[string]Index),
	}
}

func (f *Factory) For(scope string) (Index, error) {
	if scope == "" {
		scope = SharedScope
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if idx, ok := f.indexes[scope]; ok {
		return idx, nil
	}

	var (
		idx Index
		err error
	)
	switch f.backend {
	case BackendFile:
		path := filepath.Join(f.dataDir, fmt.Sprintf("index_%s.json", scope))
		idx, err = NewFileIndex(path, f.embedder, f.dimension)
	case BackendPgvector:
		if f.db == nil {
			return nil, fmt.Errorf("pgvector backend requires a database connection")
		}
		idx = NewPgIndex(f.db, scope, f.embedder, f.dimension)
	default:
		return nil, fmt.Errorf("unsupported index backend: %s", f.backend)
	}
	if err != nil {
		return nil, err
	}

	f.indexes[scope] = idx
	return idx, nil
}
