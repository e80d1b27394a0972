package bootstrap

import (
	"log"

	"agentclone-be/internal/config"
	"agentclone-be/internal/controller"
	"agentclone-be/internal/pkg/logger"
	filerepo "agentclone-be/internal/repository/file"
	"agentclone-be/internal/repository/memory"
	"agentclone-be/internal/service"
	"agentclone-be/internal/tools"
	"agentclone-be/pkg/database"
	"agentclone-be/pkg/embedding"
	"agentclone-be/pkg/llm/factory"
	"agentclone-be/pkg/rag/index"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PersonaController controller.IPersonaController
	ChatController    controller.IChatController
	SourceController  controller.ISourceController
	IngestController  controller.IIngestController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbedModel)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Embedding index, file-backed by default, pgvector when configured
	var db *gorm.DB
	if cfg.Index.Backend == index.BackendPgvector {
		db, err = database.NewGormDB(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to database: %v", err)
		}
		if err := index.Migrate(db); err != nil {
			log.Fatalf("[FATAL] Failed to migrate index schema: %v", err)
		}
	}
	indexes := index.NewFactory(cfg.Index.Backend, cfg.App.DataDir, db, embeddingProvider, cfg.Index.Dimension)
	log.Printf("[INFO] Using Index Backend: %s (scope: %s)", cfg.Index.Backend, cfg.Index.Scope)

	// Tool registry
	registry := tools.NewRegistry()
	registry.Register(tools.NewRetrieveDocumentsTool(indexes, cfg.Index.TopK))

	// Repositories
	personaRepo := filerepo.NewPersonaRepository(cfg.App.DataDir)
	catalogRepo := filerepo.NewSourceCatalogRepository(cfg.App.DataDir)
	durableHistory := filerepo.NewHistoryRepository(cfg.App.DataDir)
	sessionHistory := memory.NewHistoryRepository()

	// Services
	personaService := service.NewPersonaService(personaRepo, registry, llmProvider, sysLogger)
	sourceService := service.NewSourceService(catalogRepo)
	ingestService := service.NewIngestService(indexes, cfg.Index.ChunkSize, sysLogger)
	chatService := service.NewChatService(
		personaRepo,
		durableHistory,
		sessionHistory,
		indexes,
		registry,
		llmProvider,
		service.ChatOptions{
			Temperature: cfg.Ai.Temperature,
			CallTimeout: cfg.Ai.CallTimeout,
			MaxRetries:  cfg.Ai.MaxRetries,
			TopK:        cfg.Index.TopK,
			IndexScope:  cfg.Index.Scope,
		},
		sysLogger,
	)

	return &Container{
		PersonaController: controller.NewPersonaController(personaService),
		ChatController:    controller.NewChatController(chatService),
		SourceController:  controller.NewSourceController(sourceService),
		IngestController:  controller.NewIngestController(ingestService),
		Logger:            sysLogger,
	}
}
