package service

import (
	"context"
	"fmt"
	"strings"

	"agentclone-be/internal/apperror"
	"agentclone-be/internal/dto"
	"agentclone-be/internal/entity"
	"agentclone-be/internal/pkg/logger"
	"agentclone-be/internal/repository/contract"
	"agentclone-be/internal/tools"
	"agentclone-be/pkg/llm"

	"github.com/google/uuid"
)

type IPersonaService interface {
	GetAll(ctx context.Context) ([]*dto.ShowPersonaResponse, error)
	Create(ctx context.Context, req *dto.CreatePersonaRequest) (*dto.CreatePersonaResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowPersonaResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type personaService struct {
	personaRepo contract.PersonaRepository
	registry    *tools.Registry
	llmProvider llm.Provider
	logger      logger.ILogger
}

func NewPersonaService(
	personaRepo contract.PersonaRepository,
	registry *tools.Registry,
	llmProvider llm.Provider,
	log logger.ILogger,
) IPersonaService {
	return &personaService{
		personaRepo: personaRepo,
		registry:    registry,
		llmProvider: llmProvider,
		logger:      log,
	}
}

func (s *personaService) GetAll(ctx context.Context) ([]*dto.ShowPersonaResponse, error) {
	personas, err := s.personaRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowPersonaResponse, 0, len(personas))
	for _, p := range personas {
		result = append(result, mapPersona(p))
	}
	return result, nil
}

func (s *personaService) Create(ctx context.Context, req *dto.CreatePersonaRequest) (*dto.CreatePersonaResponse, error) {
	// Only registered capabilities may be enabled on a persona.
	for _, name := range req.ToolsEnabled {
		if !s.registry.Has(name) {
			return nil, apperror.Validation(fmt.Sprintf("unknown tool %q, available: %s",
				name, strings.Join(s.registry.Names(), ", ")))
		}
	}

	persona := &entity.Persona{
		Id:               uuid.New(),
		Name:             req.Name,
		Type:             req.Type,
		SourceType:       req.SourceType,
		Source:           req.Source,
		ShortDescription: req.ShortDescription,
		Tone:             req.Tone,
		ToolsEnabled:     req.ToolsEnabled,
		MemoryEnabled:    req.MemoryEnabled,
		KnowledgeSources: req.KnowledgeSources,
	}

	if persona.ShortDescription == "" {
		desc, err := s.generateShortDescription(ctx, persona)
		if err != nil {
			// Description generation is best-effort, creation still succeeds.
			s.logger.Warn("PersonaService", "short description generation failed", map[string]interface{}{
				"persona": persona.Name,
				"error":   err.Error(),
			})
		} else {
			persona.ShortDescription = desc
		}
	}

	if err := s.personaRepo.Save(ctx, persona); err != nil {
		return nil, err
	}

	s.logger.Info("PersonaService", "persona created", map[string]interface{}{
		"id":   persona.Id.String(),
		"name": persona.Name,
	})

	return &dto.CreatePersonaResponse{
		Id:               persona.Id,
		ShortDescription: persona.ShortDescription,
	}, nil
}

func (s *personaService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowPersonaResponse, error) {
	persona, err := s.personaRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapPersona(persona), nil
}

func (s *personaService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.personaRepo.Delete(ctx, id)
}

// generateShortDescription asks the model for a compact expertise summary
// used in the system prompt when the creator left the field blank.
func (s *personaService) generateShortDescription(ctx context.Context, persona *entity.Persona) (string, error) {
	prompt := fmt.Sprintf(
		"Write a concise description (max 200 characters) of the expertise of %s, a %s based on %s (%s). Respond with the description only.",
		persona.Name, persona.Type, persona.SourceType, persona.Source,
	)

	desc, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(80),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}

func mapPersona(p *entity.Persona) *dto.ShowPersonaResponse {
	return &dto.ShowPersonaResponse{
		Id:               p.Id,
		Name:             p.Name,
		Type:             p.Type,
		SourceType:       p.SourceType,
		Source:           p.Source,
		ShortDescription: p.ShortDescription,
		Tone:             p.Tone,
		ToolsEnabled:     p.ToolsEnabled,
		MemoryEnabled:    p.MemoryEnabled,
		KnowledgeSources: p.KnowledgeSources,
	}
}
