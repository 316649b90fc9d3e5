package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Keys      APIKeys
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type QdrantConfig struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

type APIKeys struct {
	Groq   string
	OpenAI string
}

type AIConfig struct {
	LLMProvider       string // "groq" or "ollama"
	LLMModel          string
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaEmbedModel  string
	ProvisioningModel string // model used to generate bot prompts
}

type RetrievalConfig struct {
	// Driver selects the vector backend for chat sessions:
	// "qdrant" builds a per-session collection, "pgvector" queries the
	// pre-embedded chunk rows in place.
	Driver string
	ChatK  int
	TaskK  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Qdrant: QdrantConfig{
			Host:   getEnv("QDRANT_HOST", "localhost"),
			Port:   getEnvAsInt("QDRANT_PORT", 6334),
			APIKey: getEnv("QDRANT_API_KEY", ""),
			UseTLS: getEnvAsBool("QDRANT_USE_TLS", false),
		},
		Keys: APIKeys{
			Groq:   getEnv("GROQ_API_KEY", ""),
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			LLMModel:          getEnv("GROQ_MODEL_NAME", "deepseek-r1-distill-llama-70b"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			ProvisioningModel: getEnv("PROVISIONING_MODEL_NAME", "gpt-4"),
		},
		Retrieval: RetrievalConfig{
			Driver: getEnv("RETRIEVAL_DRIVER", "qdrant"),
			ChatK:  getEnvAsInt("RETRIEVAL_CHAT_K", 3),
			TaskK:  getEnvAsInt("RETRIEVAL_TASK_K", 5),
		},
	}
}

// Validate reports the required variables that are missing for the selected
// providers.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Connection == "" {
		missing = append(missing, "DB_CONNECTION_STRING")
	}
	if c.Ai.LLMProvider == "groq" && c.Keys.Groq == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if c.Ai.EmbeddingProvider == "openai" && c.Keys.OpenAI == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
