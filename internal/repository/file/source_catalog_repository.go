package file

import (
	"context"
	"path/filepath"
	"sync"

	"agentclone-be/internal/entity"
	"agentclone-be/internal/repository/contract"
)

// SourceCatalogRepository stores the catalog in sources.json. The default
// categories are seeded (and persisted) the first time the file is missing.
type SourceCatalogRepository struct {
	mu   sync.Mutex
	path string
}

func NewSourceCatalogRepository(dataDir string) contract.SourceCatalogRepository {
	return &SourceCatalogRepository{
		path: filepath.Join(dataDir, "sources.json"),
	}
}

func (r *SourceCatalogRepository) Load(ctx context.Context) (entity.SourceCatalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var catalog entity.SourceCatalog
	ok, err := readJSON(r.path, &catalog)
	if err != nil {
		return nil, err
	}
	if !ok {
		catalog = entity.DefaultSourceCatalog()
		if err := writeJSON(r.path, catalog); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func (r *SourceCatalogRepository) Save(ctx context.Context, catalog entity.SourceCatalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSON(r.path, catalog)
}
