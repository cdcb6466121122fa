package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kapu/pokedex-go/internal/constants"
)

type Config struct {
	PokeAPI  PokeAPIConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Logging  LoggingConfig
}

type PokeAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type StorageConfig struct {
	Backend string
	Key     string
	File    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads configuration from the environment. envFiles are passed to
// godotenv; when empty, a .env in the working directory is used if present.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		PokeAPI: PokeAPIConfig{
			BaseURL: strings.TrimRight(getEnv("POKEAPI_BASE_URL", constants.APIConfig.PokeAPIBaseURL), "/"),
			Timeout: getEnvSeconds("POKEAPI_TIMEOUT_SECONDS", constants.APIConfig.PokeAPITimeout),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
			Key:     getEnv("STORAGE_KEY", constants.StorageConfig.CaughtKey),
			File:    getEnv("STORAGE_FILE", defaultStorageFile()),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "pokedex"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "pokedex"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "logs/pokedex.log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PokeAPI.BaseURL == "" {
		return fmt.Errorf("POKEAPI_BASE_URL is required")
	}
	if c.PokeAPI.Timeout < 0 {
		return fmt.Errorf("POKEAPI_TIMEOUT_SECONDS must not be negative")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("STORAGE_KEY is required")
	}
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.File == "" {
			return fmt.Errorf("STORAGE_FILE is required for the file backend")
		}
	case BackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
	case BackendPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("POSTGRES_HOST and POSTGRES_DB are required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

func defaultStorageFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".pokedex", "storage.json")
	}
	return filepath.Join(dir, constants.StorageConfig.DefaultFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal) * time.Second
		}
	}
	return defaultValue
}
