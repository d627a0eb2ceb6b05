package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string
	AppMode      string
	FiberPrefork bool

	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBDialTimeout      time.Duration

	WorkerBufferSize int
	WorkerBatchSize  int
	WorkerFlushEvery time.Duration
	FutureTolerance  time.Duration

	// Analytics heuristics, tunable without code changes.
	DedupWindow       time.Duration
	ActiveAgentWindow time.Duration
	SaleKeywords      []string
	CurrencySymbols   []string
	OptimismFactor    float64
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", ":8080"),
		AppMode:      strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork: parseBoolEnv("FIBER_PREFORK", false),

		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "crm"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: os.Getenv("CLICKHOUSE_PASSWORD"),
		DBMaxOpenConns:     parseIntEnv("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:     parseIntEnv("DB_MAX_IDLE_CONNS", 5),
		DBDialTimeout:      parseDurationEnv("DB_DIAL_TIMEOUT", 10*time.Second),

		WorkerBufferSize: parseIntEnv("WORKER_BUFFER_SIZE", 1000),
		WorkerBatchSize:  parseIntEnv("WORKER_BATCH_SIZE", 200),
		WorkerFlushEvery: parseDurationEnv("WORKER_FLUSH_EVERY", 2*time.Second),
		FutureTolerance:  parseDurationEnv("FUTURE_TOLERANCE", 5*time.Minute),

		DedupWindow:       parseDurationEnv("COMPLETION_DEDUP_WINDOW", time.Minute),
		ActiveAgentWindow: parseDurationEnv("ACTIVE_AGENT_WINDOW", 7*24*time.Hour),
		SaleKeywords:      parseListEnv("SALE_KEYWORDS", []string{"sold", "deal"}),
		CurrencySymbols:   parseListEnv("CURRENCY_SYMBOLS", []string{"£", "$", "€"}),
		OptimismFactor:    parseFloatEnv("PREDICTION_OPTIMISM", 1.05),
	}
	cfg.ClickHouseAddr = os.Getenv("CLICKHOUSE_ADDR")
	if cfg.ClickHouseAddr == "" {
		return nil, fmt.Errorf("CLICKHOUSE_ADDR is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloatEnv(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseListEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
