package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Counter increments a windowed request counter and returns the new count
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter keeps rate limit counters in Redis
type RedisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter wraps a Redis client as a Counter
func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Incr increments key and sets its expiry on first use
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		r.rdb.Expire(ctx, key, window)
	}
	return count, nil
}

// RateLimits configures the per-client request limits. Zero disables a level.
type RateLimits struct {
	PerSecond int
	PerDay    int
}

// RateLimitMiddleware implements per-client rate limiting
// It checks limits per second and per day, keyed by client IP
func RateLimitMiddleware(counter Counter, limits RateLimits) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		now := time.Now()
		client := c.IP()

		keySecond := fmt.Sprintf("rl:client:%s:second:%d", client, now.Unix())
		keyDay := fmt.Sprintf("rl:client:%s:day:%s", client, now.Format("2006-01-02"))

		// Check per-second rate limit
		if limits.PerSecond > 0 {
			countSecond, err := counter.Incr(ctx, keySecond, 2*time.Second)
			if err == nil && countSecond > int64(limits.PerSecond) {
				c.Set("X-RateLimit-Limit-Second", strconv.Itoa(limits.PerSecond))
				c.Set("X-RateLimit-Remaining-Second", "0")
				c.Set("Retry-After", "1")

				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":       "rate_limit_exceeded",
					"message":     "Too many requests per second",
					"limit_type":  "per_second",
					"limit":       limits.PerSecond,
					"retry_after": 1,
				})
			}
		}

		// Check per-day rate limit
		if limits.PerDay > 0 {
			countDay, err := counter.Incr(ctx, keyDay, 25*time.Hour) // 25 hours to handle timezone differences
			if err == nil {
				if countDay > int64(limits.PerDay) {
					tomorrow := now.AddDate(0, 0, 1)
					midnight := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
					retryAfter := int64(midnight.Sub(now).Seconds())

					c.Set("X-RateLimit-Limit-Day", strconv.Itoa(limits.PerDay))
					c.Set("X-RateLimit-Remaining-Day", "0")
					c.Set("Retry-After", strconv.FormatInt(retryAfter, 10))

					return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
						"error":       "daily_quota_exceeded",
						"message":     "Daily quota exceeded",
						"limit_type":  "per_day",
						"limit":       limits.PerDay,
						"used":        countDay,
						"retry_after": retryAfter,
						"reset_at":    midnight.Format(time.RFC3339),
					})
				}

				c.Set("X-RateLimit-Remaining-Day", strconv.FormatInt(int64(limits.PerDay)-countDay, 10))
			}
		}

		c.Set("X-RateLimit-Limit-Second", strconv.Itoa(limits.PerSecond))
		c.Set("X-RateLimit-Limit-Day", strconv.Itoa(limits.PerDay))

		return c.Next()
	}
}
