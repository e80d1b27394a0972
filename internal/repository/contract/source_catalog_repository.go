package contract

import (
	"context"

	"agentclone-be/internal/entity"
)

type SourceCatalogRepository interface {
	Load(ctx context.Context) (entity.SourceCatalog, error)
	Save(ctx context.Context, catalog entity.SourceCatalog) error
}
