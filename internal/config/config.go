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
	Addr                 string
	DBPath               string
	LogLevel             string
	TelemetryWorkerCount int
	TelemetryQueueSize   int
	HistoryLimit         int
	StartingHintPoints   int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:talkietrivia.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		TelemetryWorkerCount: envIntOr("TELEMETRY_WORKER_COUNT", 1),
		TelemetryQueueSize:   envIntOr("TELEMETRY_QUEUE_SIZE", 128),
		HistoryLimit:         envIntOr("HISTORY_LIMIT", 30),
		StartingHintPoints:   envIntOr("STARTING_HINT_POINTS", 3),
	}
}

// Validate reports every configuration problem at once.
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
	if c.TelemetryWorkerCount < 1 {
		problems = append(problems, "TELEMETRY_WORKER_COUNT must be at least 1")
	}
	if c.TelemetryQueueSize < 1 {
		problems = append(problems, "TELEMETRY_QUEUE_SIZE must be at least 1")
	}
	if c.HistoryLimit < 1 {
		problems = append(problems, "HISTORY_LIMIT must be at least 1")
	}
	if c.StartingHintPoints < 0 {
		problems = append(problems, "STARTING_HINT_POINTS cannot be negative")
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
