package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI           string
	GoogleGemini     string
	DiarizationToken string
	JWTSecret        string

	MeetingUploadedTopic string // watermill topic: kicks off the processing pipeline
	IndexDocumentTopic   string // watermill topic: chunk + embed + upsert
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "openai", "gemini" or "ollama"
	LLMModel          string // e.g. "gpt-4o", "gemini-2.5-pro", "llama3"
	SttModel          string // whisper model name
}

type PipelineConfig struct {
	DiarizationURL string
	TempDir        string
	ResultsDir     string
	SttWorkers     int
	MinSegmentSec  float64
	ChunkSize      int
	ChunkOverlap   int
}

type RagConfig struct {
	TopK                int
	NodeTimeoutSec      int
	ShortCircuitOnEmpty bool // when grading filters everything out, answer "no relevant info" instead of generating
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MinuteFlow"),
		},
		Keys: APIKeys{
			OpenAI:           getEnv("OPENAI_API_KEY", ""),
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			DiarizationToken: getEnv("DIARIZATION_TOKEN", ""),
			JWTSecret:        getEnv("JWT_SECRET", ""),

			MeetingUploadedTopic: getEnv("MEETING_UPLOADED_TOPIC_NAME", "MEETING_UPLOADED"),
			IndexDocumentTopic:   getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o"),
			SttModel:          getEnv("STT_MODEL", "whisper-1"),
		},
		Pipeline: PipelineConfig{
			DiarizationURL: getEnv("DIARIZATION_URL", "http://localhost:8200"),
			TempDir:        getEnv("PIPELINE_TEMP_DIR", "temp"),
			ResultsDir:     getEnv("PIPELINE_RESULTS_DIR", "results"),
			SttWorkers:     getEnvAsInt("STT_WORKERS", 4),
			MinSegmentSec:  1.0,
			ChunkSize:      getEnvAsInt("INDEX_CHUNK_SIZE", 1000),
			ChunkOverlap:   getEnvAsInt("INDEX_CHUNK_OVERLAP", 200),
		},
		Rag: RagConfig{
			TopK:                getEnvAsInt("RAG_TOP_K", 5),
			NodeTimeoutSec:      getEnvAsInt("RAG_NODE_TIMEOUT_SEC", 60),
			ShortCircuitOnEmpty: getEnv("RAG_SHORT_CIRCUIT_ON_EMPTY", "false") == "true",
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
