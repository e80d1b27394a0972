package file

import (
	"context"
	"path/filepath"
	"sync"

	"agentclone-be/internal/entity"
	"agentclone-be/internal/repository/contract"
)

// HistoryRepository stores every persona's conversation in one
// chat_history.json, keyed by persona name. Appends rewrite the whole file.
type HistoryRepository struct {
	mu   sync.Mutex
	path string
}

func NewHistoryRepository(dataDir string) contract.HistoryRepository {
	return &HistoryRepository{
		path: filepath.Join(dataDir, "chat_history.json"),
	}
}

func (r *HistoryRepository) load() (map[string][]entity.Turn, error) {
	histories := map[string][]entity.Turn{}
	if _, err := readJSON(r.path, &histories); err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *HistoryRepository) Load(ctx context.Context, personaName string) ([]entity.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	histories, err := r.load()
	if err != nil {
		return nil, err
	}
	return histories[personaName], nil
}

func (r *HistoryRepository) Append(ctx context.Context, personaName string, turn entity.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	histories, err := r.load()
	if err != nil {
		return err
	}
	histories[personaName] = append(histories[personaName], turn)
	return writeJSON(r.path, histories)
}
