package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Ai        AIConfig
	Retention RetentionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string // e.g. "gpt-4o-mini", "llama3"
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

type RetentionConfig struct {
	WindowHours   int
	SweepInterval int // minutes
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Retention: RetentionConfig{
			WindowHours:   getEnvAsInt("MESSAGE_RETENTION_HOURS", 24),
			SweepInterval: getEnvAsInt("RETENTION_SWEEP_INTERVAL_MINUTES", 60),
		},
	}

	// Missing secrets degrade the corresponding feature, never the process.
	if cfg.Database.Connection == "" {
		log.Println("[WARN] DB_CONNECTION_STRING is missing, messages won't save")
	}
	if cfg.Ai.OpenAIAPIKey == "" && cfg.Ai.LLMProvider == "openai" {
		log.Println("[WARN] OPENAI_API_KEY is missing, AI rewrites will fail upstream")
	}
	if cfg.Auth.JwtSecret == "" {
		log.Println("[WARN] JWT_SECRET is missing, using insecure default")
	}

	return cfg
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
