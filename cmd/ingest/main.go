package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"agentclone-be/internal/config"
	"agentclone-be/internal/dto"
	"agentclone-be/internal/pkg/logger"
	"agentclone-be/internal/service"
	"agentclone-be/pkg/database"
	"agentclone-be/pkg/embedding"
	"agentclone-be/pkg/rag/index"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// Feeds text files into the embedding index so personas have something to
// retrieve. Usage: ingest [-scope name] file [file...]
func main() {
	scope := flag.String("scope", index.SharedScope, "corpus scope to ingest into")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ingest [-scope name] file [file...]")
		os.Exit(1)
	}

	cfg := config.Load()

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIEmbedModel)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	}

	var db *gorm.DB
	if cfg.Index.Backend == index.BackendPgvector {
		var err error
		db, err = database.NewGormDB(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("connect to database: %v", err)
		}
		if err := index.Migrate(db); err != nil {
			log.Fatalf("migrate index schema: %v", err)
		}
	}
	indexes := index.NewFactory(cfg.Index.Backend, cfg.App.DataDir, db, embeddingProvider, cfg.Index.Dimension)

	ingest := service.NewIngestService(indexes, cfg.Index.ChunkSize, logger.NewNopLogger())

	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	ctx := context.Background()

	failed := 0
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			failure.Printf("✗ %s: %v\n", path, err)
			failed++
			continue
		}

		res, err := ingest.Ingest(ctx, &dto.IngestRequest{Scope: *scope, Text: string(data)})
		if err != nil {
			failure.Printf("✗ %s: %v\n", path, err)
			failed++
			continue
		}
		success.Printf("✓ %s: %d chunks (index now holds %d passages)\n", path, res.Chunks, res.IndexSize)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
