package service

import (
	"context"
	"fmt"

	"agentclone-be/internal/apperror"
	"agentclone-be/internal/dto"
	"agentclone-be/internal/repository/contract"
)

type ISourceService interface {
	GetCatalog(ctx context.Context) (*dto.SourceCatalogResponse, error)
	AddSource(ctx context.Context, req *dto.AddSourceRequest) error
	RemoveSource(ctx context.Context, req *dto.AddSourceRequest) error
}

type sourceService struct {
	catalogRepo contract.SourceCatalogRepository
}

func NewSourceService(catalogRepo contract.SourceCatalogRepository) ISourceService {
	return &sourceService{
		catalogRepo: catalogRepo,
	}
}

func (s *sourceService) GetCatalog(ctx context.Context) (*dto.SourceCatalogResponse, error) {
	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SourceCatalogResponse{Categories: catalog}, nil
}

func (s *sourceService) AddSource(ctx context.Context, req *dto.AddSourceRequest) error {
	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return err
	}

	sources, ok := catalog[req.Category]
	if !ok {
		return apperror.Validation(fmt.Sprintf("unknown category %q", req.Category))
	}
	for _, existing := range sources {
		if existing == req.Source {
			return nil // already present, nothing to do
		}
	}
	catalog[req.Category] = append(sources, req.Source)

	return s.catalogRepo.Save(ctx, catalog)
}

func (s *sourceService) RemoveSource(ctx context.Context, req *dto.AddSourceRequest) error {
	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return err
	}

	sources, ok := catalog[req.Category]
	if !ok {
		return apperror.Validation(fmt.Sprintf("unknown category %q", req.Category))
	}

	kept := make([]string, 0, len(sources))
	found := false
	for _, existing := range sources {
		if existing == req.Source {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return apperror.NotFound("source", req.Source)
	}
	catalog[req.Category] = kept

	return s.catalogRepo.Save(ctx, catalog)
}
