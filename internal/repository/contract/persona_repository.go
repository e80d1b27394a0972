package contract

import (
	"context"

	"agentclone-be/internal/entity"

	"github.com/google/uuid"
)

type PersonaRepository interface {
	FindAll(ctx context.Context) ([]*entity.Persona, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.Persona, error)
	Save(ctx context.Context, persona *entity.Persona) error
	Delete(ctx context.Context, id uuid.UUID) error
}
