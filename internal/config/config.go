package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Network sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port               string
	NetworkSource      string
	DatasetPath        string // empty selects the embedded dataset
	RoutingTimeout     time.Duration
	CacheEnabled       bool
	CacheTTL           time.Duration
	RateLimitPerSecond int
	RateLimitPerDay    int
}

// LoadEnvFiles loads .env then lets .env.local override it.
// Missing files are not an error.
func LoadEnvFiles() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}
	if err := godotenv.Overload(".env.local"); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env.local: %v", err)
	}
}

// LoadFromEnv reads the configuration from environment variables
func LoadFromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("ROUTING_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROUTING_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid ROUTING_TIMEOUT: must not be negative")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_ENABLED: %w", err)
	}

	perSecond, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_SECOND", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_SECOND: %w", err)
	}

	perDay, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_DAY", "10000"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_DAY: %w", err)
	}

	source := getEnv("NETWORK_SOURCE", SourceFile)
	if source != SourceFile && source != SourcePostgres {
		return nil, fmt.Errorf("invalid NETWORK_SOURCE %q: expected %q or %q", source, SourceFile, SourcePostgres)
	}

	return &Config{
		Port:               getEnv("API_PORT", "8080"),
		NetworkSource:      source,
		DatasetPath:        getEnv("DATASET_PATH", ""),
		RoutingTimeout:     timeout,
		CacheEnabled:       cacheEnabled,
		CacheTTL:           cacheTTL,
		RateLimitPerSecond: perSecond,
		RateLimitPerDay:    perDay,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
