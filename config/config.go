package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	AI        AIConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	History   HistoryConfig
	Client    ClientConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// AIConfig selects and configures the completion provider used by the endpoint.
type AIConfig struct {
	Provider   string // gateway | gemini
	GatewayURL string
	APIKey     string
	Model      string
	Timeout    time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// HistoryConfig configures the client-side recent blueprints store.
type HistoryConfig struct {
	Backend string // sqlite | redis | memory
	Path    string
	Key     string
}

// ClientConfig configures the CLI's connection to the analysis endpoint.
type ClientConfig struct {
	APIURL            string
	APIKey            string
	GenerationTimeout time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		AI: AIConfig{
			Provider:   strings.ToLower(getEnv("AI_PROVIDER", "gateway")),
			GatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
			APIKey:     getEnv("AI_API_KEY", ""),
			Model:      getEnv("AI_MODEL", ""),
			Timeout:    getEnvAsSeconds("AI_TIMEOUT_SECONDS", 60*time.Second),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 2),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		History: HistoryConfig{
			Backend: strings.ToLower(getEnv("HISTORY_BACKEND", "sqlite")),
			Path:    getEnv("HISTORY_PATH", defaultHistoryPath()),
			Key:     getEnv("HISTORY_KEY", "aura_blueprint_history"),
		},
		Client: ClientConfig{
			APIURL:            getEnv("AURA_API_URL", "http://localhost:8080/api/v1"),
			APIKey:            getEnv("AURA_API_KEY", ""),
			GenerationTimeout: getEnvAsSeconds("GENERATION_TIMEOUT_SECONDS", 45*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.AI.Provider {
	case "gateway", "gemini":
	default:
		return fmt.Errorf("AI_PROVIDER must be gateway or gemini, got %q", c.AI.Provider)
	}

	switch c.History.Backend {
	case "sqlite", "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when HISTORY_BACKEND=redis")
		}
	default:
		return fmt.Errorf("HISTORY_BACKEND must be sqlite, redis or memory, got %q", c.History.Backend)
	}

	if c.History.Key == "" {
		return fmt.Errorf("HISTORY_KEY is required")
	}

	return nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aura", "history.db")
	}
	return filepath.Join(home, ".aura", "history.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
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
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	seconds := getEnvAsInt(key, -1)
	if seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
