package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis, so the
// limit holds across replicas.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter connects to Redis and returns a limiter allowing limit
// requests per window per client IP.
func NewRateLimiter(addr string, limit int, window time.Duration) (*RateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RateLimiter{client: client, limit: limit, window: window}, nil
}

// Middleware rejects requests over the limit with 429. Redis errors fail
// open: a broken limiter must not take the API down with it.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + c.RealIP()
			ctx := c.Request().Context()

			count, err := rl.client.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("rate limiter error: %v", err)
				return next(c)
			}
			if count == 1 {
				rl.client.Expire(ctx, key, rl.window)
			}
			if count > int64(rl.limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
			}
			return next(c)
		}
	}
}

// Close releases the Redis connection.
func (rl *RateLimiter) Close() error {
	return rl.client.Close()
}
