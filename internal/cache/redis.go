package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/passbi/passbi_planner/internal/models"
	"github.com/passbi/passbi_planner/internal/routing"
	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config holds Redis configuration
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// LoadConfigFromEnv loads Redis configuration from environment variables
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, _ := time.ParseDuration(getEnv("CACHE_TTL", "10m"))

	return &Config{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     port,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
		TTL:      ttl,
	}
}

// GetClient returns the global Redis client (singleton pattern)
func GetClient() (*redis.Client, error) {
	clientOnce.Do(func() {
		config := LoadConfigFromEnv()

		opts := &redis.Options{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			Password:     config.Password,
			DB:           config.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}

		if getEnv("REDIS_TLS_ENABLED", "false") == "true" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		client = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("failed to connect to Redis: %w", err)
			return
		}
	})

	return client, clientErr
}

// Close closes the Redis client
func Close() {
	if client != nil {
		client.Close()
	}
}

// RouteKey generates a cache key for one strategy of a route query.
// The weights are part of the key so custom strategies never collide.
func RouteKey(source, destination string, strategy routing.Strategy) string {
	data := fmt.Sprintf("%s\x00%s\x00%.6f,%.6f,%.6f", source, destination,
		strategy.CostWeight, strategy.TimeWeight, strategy.StopsWeight)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("route:%x:%s", hash[:8], strategy.Name)
}

// RouteCache stores computed routes in Redis
type RouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRouteCache creates a route cache with the given entry lifetime
func NewRouteCache(rdb *redis.Client, ttl time.Duration) *RouteCache {
	return &RouteCache{rdb: rdb, ttl: ttl}
}

// GetRoute retrieves a cached route; a miss returns nil without error
func (c *RouteCache) GetRoute(ctx context.Context, key string) (*models.Route, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var route models.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached route: %w", err)
	}

	return &route, nil
}

// SetRoute caches a route
func (c *RouteCache) SetRoute(ctx context.Context, key string, route *models.Route) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("failed to marshal route: %w", err)
	}

	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// HealthCheck performs a health check on the Redis connection
func (c *RouteCache) HealthCheck(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis ping failed: %w", err)
	}
	return nil
}

// Stats returns Redis connection pool stats
func (c *RouteCache) Stats() map[string]interface{} {
	poolStats := c.rdb.PoolStats()

	return map[string]interface{}{
		"hits":        poolStats.Hits,
		"misses":      poolStats.Misses,
		"timeouts":    poolStats.Timeouts,
		"total_conns": poolStats.TotalConns,
		"idle_conns":  poolStats.IdleConns,
		"stale_conns": poolStats.StaleConns,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
