package file

import (
	"context"
	"path/filepath"
	"sync"

	"agentclone-be/internal/apperror"
	"agentclone-be/internal/entity"
	"agentclone-be/internal/repository/contract"

	"github.com/google/uuid"
)

// PersonaRepository keeps all personas in one personas.json, rewritten whole
// on every mutation. Single-writer, mutex-guarded.
type PersonaRepository struct {
	mu   sync.Mutex
	path string
}

func NewPersonaRepository(dataDir string) contract.PersonaRepository {
	return &PersonaRepository{
		path: filepath.Join(dataDir, "personas.json"),
	}
}

func (r *PersonaRepository) load() ([]*entity.Persona, error) {
	var personas []*entity.Persona
	if _, err := readJSON(r.path, &personas); err != nil {
		return nil, err
	}
	return personas, nil
}

func (r *PersonaRepository) FindAll(ctx context.Context) ([]*entity.Persona, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *PersonaRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Persona, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	personas, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, p := range personas {
		if p.Id == id {
			return p, nil
		}
	}
	return nil, apperror.NotFound("persona", id)
}

// Save appends a new persona or replaces an existing one wholesale; partial
// updates are not supported.
func (r *PersonaRepository) Save(ctx context.Context, persona *entity.Persona) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	personas, err := r.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, p := range personas {
		if p.Id == persona.Id {
			personas[i] = persona
			replaced = true
			break
		}
	}
	if !replaced {
		personas = append(personas, persona)
	}

	return writeJSON(r.path, personas)
}

func (r *PersonaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	personas, err := r.load()
	if err != nil {
		return err
	}

	kept := make([]*entity.Persona, 0, len(personas))
	found := false
	for _, p := range personas {
		if p.Id == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return apperror.NotFound("persona", id)
	}

	return writeJSON(r.path, kept)
}
