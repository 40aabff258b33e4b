package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ariebrainware/hospital-records/config"
	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultRateLimit  = 120
	defaultRateWindow = time.Minute
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// Client overrides the shared Redis client; used by tests.
	Client *redis.Client
}

// RateLimiter creates a fixed window rate limiting middleware keyed by route and client IP.
// It fails open: without Redis, or when Redis errors, requests pass.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		rdb := cfg.Client
		if rdb == nil {
			rdb = config.GetRedisClient()
		}
		if rdb == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := rateLimitKey(c.Request.Method, route, clientIP)

		allowed, retryAfter, err := checkRateLimit(c.Request.Context(), rdb, key, cfg.Limit, cfg.Window)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
			c.Next()
			return
		}

		if !allowed {
			log.Warn().Str("ip", clientIP).Str("route", route).Msg("rate limit exceeded")
			c.Header("Retry-After", retryAfterSeconds(retryAfter))
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateLimitKey(method, route, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s:%s", method, route, clientIP)
}

// retryAfterSeconds renders d as whole seconds, rounded up, never below one.
func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// checkRateLimit increments the window counter and reports whether it is still within limit,
// along with the time left in the current window.
// The window is started with a plain EXPIRE when the counter has no TTL yet, which also
// repairs a counter left without one.
func checkRateLimit(ctx context.Context, rdb *redis.Client, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, fmt.Errorf("failed to check rate limit: %w", err)
	}

	remaining := ttlCmd.Val()
	if remaining < 0 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to start rate limit window: %w", err)
		}
		remaining = window
	}
	return incrCmd.Val() <= int64(limit), remaining, nil
}

// ResetRateLimit resets the rate limit for a given route and client.
func ResetRateLimit(ctx context.Context, rdb *redis.Client, method, route, clientIP string) error {
	if rdb == nil {
		return fmt.Errorf("redis not available")
	}
	return rdb.Del(ctx, rateLimitKey(method, route, clientIP)).Err()
}
