package contract

import (
	"context"

	"agentclone-be/internal/entity"
)

// HistoryRepository persists conversation turns per persona. Turns are
// append-only; implementations must preserve insertion order.
type HistoryRepository interface {
	Load(ctx context.Context, personaName string) ([]entity.Turn, error)
	Append(ctx context.Context, personaName string, turn entity.Turn) error
}
