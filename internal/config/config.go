package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	OpenAI   OpenAIConfig
	Google   GoogleConfig
	Search   SearchConfig
	Logging  LoggingConfig
	Timeouts TimeoutConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// StoreConfig holds the listings store (Supabase Postgres) configuration
type StoreConfig struct {
	DSN                string
	ServiceKey         string // kept for REST-mode collaborators; unused by the SQL path
	MaxConnections     int
	MaxIdleConnections int
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey         string
	APIBase        string
	ChatModel      string // stronger tier, used for grounded listing answers
	LightChatModel string // cheaper tier, used when no retrieval context exists
	EmbeddingModel string
}

// GoogleConfig holds Google Programmable Search configuration
type GoogleConfig struct {
	APIKey string
	CSEID  string
}

// SearchConfig holds retrieval tunables
type SearchConfig struct {
	MatchThreshold   float64
	MatchCount       int
	MaxListingsShown int
	CacheSize        int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// TimeoutConfig holds per-call deadlines
type TimeoutConfig struct {
	Chat       time.Duration
	Classifier time.Duration
	Embedding  time.Duration
	Store      time.Duration
	WebSearch  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Store: StoreConfig{
			// Accept the common DSN variable names; SUPABASE_URL works when
			// it carries the direct postgres:// connection string.
			DSN:                getEnv("SUPABASE_DB_URL", getEnv("DATABASE_URL", getEnv("SUPABASE_URL", ""))),
			ServiceKey:         getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			APIBase:        getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			LightChatModel: getEnv("OPENAI_LIGHT_CHAT_MODEL", "gpt-3.5-turbo"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		},
		Google: GoogleConfig{
			APIKey: getEnv("GOOGLE_API_KEY", ""),
			CSEID:  getEnv("GOOGLE_CSE_ID", ""),
		},
		Search: SearchConfig{
			MatchThreshold:   getEnvAsFloat("SEARCH_MATCH_THRESHOLD", 0.3),
			MatchCount:       getEnvAsInt("SEARCH_MATCH_COUNT", 50),
			MaxListingsShown: getEnvAsInt("SEARCH_MAX_LISTINGS_SHOWN", 20),
			CacheSize:        getEnvAsInt("SEARCH_CACHE_SIZE", 1024),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Timeouts: TimeoutConfig{
			Chat:       getEnvAsDuration("TIMEOUT_CHAT_SECONDS", 120),
			Classifier: getEnvAsDuration("TIMEOUT_CLASSIFIER_SECONDS", 30),
			Embedding:  getEnvAsDuration("TIMEOUT_EMBEDDING_SECONDS", 30),
			Store:      getEnvAsDuration("TIMEOUT_STORE_SECONDS", 30),
			WebSearch:  getEnvAsDuration("TIMEOUT_WEB_SEARCH_SECONDS", 60),
		},
	}

	// Missing OpenAI or store credentials is a fatal initialization error.
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if cfg.Store.DSN == "" {
		return nil, fmt.Errorf("listings store DSN is not set (SUPABASE_DB_URL, DATABASE_URL or SUPABASE_URL)")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
