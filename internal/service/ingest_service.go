package service

import (
	"context"

	"agentclone-be/internal/dto"
	"agentclone-be/internal/pkg/logger"
	"agentclone-be/pkg/rag/chunker"
	"agentclone-be/pkg/rag/index"
)

type IIngestService interface {
	Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error)
}

type ingestService struct {
	indexes   index.Provider
	chunkSize int
	logger    logger.ILogger
}

func NewIngestService(indexes index.Provider, chunkSize int, log logger.ILogger) IIngestService {
	return &ingestService{
		indexes:   indexes,
		chunkSize: chunkSize,
		logger:    log,
	}
}

func (s *ingestService) Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error) {
	scope := req.Scope
	if scope == "" {
		scope = index.SharedScope
	}

	idx, err := s.indexes.For(scope)
	if err != nil {
		return nil, err
	}

	chunks := chunker.Chunk(req.Text, s.chunkSize)
	if len(chunks) > 0 {
		if err := idx.Add(ctx, chunks); err != nil {
			return nil, err
		}
	}

	size, err := idx.Count(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("IngestService", "text ingested", map[string]interface{}{
		"scope":      scope,
		"chunks":     len(chunks),
		"index_size": size,
	})

	return &dto.IngestResponse{
		Scope:     scope,
		Chunks:    len(chunks),
		IndexSize: size,
	}, nil
}
