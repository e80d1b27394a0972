package memory

import (
	"context"
	"time"

	"agentclone-be/internal/entity"
	"agentclone-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// HistoryRepository keeps conversation turns in process memory only. Used for
// personas with memory disabled: the history lives for the session and is
// never written to disk.
type HistoryRepository struct {
	cache *cache.Cache
}

func NewHistoryRepository() contract.HistoryRepository {
	// Default expiration of 1 hour, purging expired entries every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &HistoryRepository{
		cache: c,
	}
}

func (r *HistoryRepository) Load(ctx context.Context, personaName string) ([]entity.Turn, error) {
	if x, found := r.cache.Get(personaName); found {
		return x.([]entity.Turn), nil
	}
	return nil, nil
}

func (r *HistoryRepository) Append(ctx context.Context, personaName string, turn entity.Turn) error {
	var turns []entity.Turn
	if x, found := r.cache.Get(personaName); found {
		turns = x.([]entity.Turn)
	}
	turns = append(turns, turn)
	r.cache.Set(personaName, turns, cache.DefaultExpiration)
	return nil
}
