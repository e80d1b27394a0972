package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Ai       AIConfig
	Index    IndexConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	DataDir            string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "openai" or "gemini"
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string // e.g. "llama3", "gpt-4o"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	OpenAIAPIKey      string
	OpenAIEmbedModel  string
	GeminiAPIKey      string
	Temperature       float64
	CallTimeout       time.Duration
	MaxRetries        int
}

type IndexConfig struct {
	Backend   string // "file" or "pgvector"
	Scope     string // "shared" or "persona"
	ChunkSize int
	TopK      int
	Dimension int // embedding dimensionality the backend enforces
}

type DatabaseConfig struct {
	Connection string // only needed for the pgvector backend
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			DataDir:            getEnv("DATA_DIR", "./data"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIEmbedModel:  getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.5),
			CallTimeout:       getEnvAsDuration("LLM_CALL_TIMEOUT", 120*time.Second),
			MaxRetries:        getEnvAsInt("LLM_MAX_RETRIES", 2),
		},
		Index: IndexConfig{
			Backend:   getEnv("INDEX_BACKEND", "file"),
			Scope:     getEnv("INDEX_SCOPE", "shared"),
			ChunkSize: getEnvAsInt("CHUNK_SIZE", 1000),
			TopK:      getEnvAsInt("RETRIEVAL_TOP_K", 2),
			Dimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
