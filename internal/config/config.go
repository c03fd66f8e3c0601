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
	Addr                string
	DBPath              string
	LogLevel            string
	SideEffectWorkers   int
	SideEffectQueueSize int
	DueWordsLimit       int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:vocapets.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		SideEffectWorkers:   envIntOr("SIDE_EFFECT_WORKER_COUNT", 2),
		SideEffectQueueSize: envIntOr("SIDE_EFFECT_QUEUE_SIZE", 64),
		DueWordsLimit:       envIntOr("DUE_WORDS_LIMIT", 0),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.SideEffectWorkers <= 0 {
		problems = append(problems, "SIDE_EFFECT_WORKER_COUNT must be positive")
	}
	if c.SideEffectQueueSize <= 0 {
		problems = append(problems, "SIDE_EFFECT_QUEUE_SIZE must be positive")
	}
	if c.DueWordsLimit < 0 {
		problems = append(problems, "DUE_WORDS_LIMIT cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
