package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/redis"
	"go-contact-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window, zero or less disables the limiter
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// rateLimitEntry is the in-memory token bucket for one key
type rateLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// rateLimitResult is the outcome of one check against either store
type rateLimitResult struct {
	allowed   bool
	remaining int
	resetAt   time.Time
}

// inMemoryStore for rate limiting (fallback when Redis unavailable)
var (
	rateLimitStore = sync.Map{}
	cleanupOnce    sync.Once
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// startCleanup runs a background goroutine dropping idle buckets
func startCleanup(idle time.Duration) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.Sub(entry.lastSeen) > idle {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// ContactRateLimitConfig returns the per-IP limit for contact submissions
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // Fail open, the form must stay usable without Redis
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config
// Uses Redis when available, falls back to in-memory when not
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 || config.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:ip:"
	}

	// Start cleanup goroutine once (for fallback)
	cleanupOnce.Do(func() { startCleanup(time.Hour) })

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var result rateLimitResult
		var err error

		// Try Redis first
		if redisClient := redis.Client(); redisClient != nil {
			result, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err != nil {
				if config.FailClosed {
					logger.Log.Error("Rate limit store unavailable", "error", err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", "")
					c.Abort()
					return
				}
				logger.Log.Warn("Rate limit falling back to memory", "error", err)
				result = checkRateLimitInMemory(fullKey, config, now)
			}
		} else {
			result = checkRateLimitInMemory(fullKey, config, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.remaining))
		c.Header("X-RateLimit-Reset", result.resetAt.UTC().Format(time.RFC3339))

		if !result.allowed {
			retryAfter := int(math.Ceil(result.resetAt.Sub(now).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			security.DefaultLogger().LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				c.GetString(RequestIDKey),
				c.FullPath(),
			)

			_ = c.Error(apperror.TooManyRequests())
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis counts requests in a fixed window using an atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (rateLimitResult, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return rateLimitResult{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return rateLimitResult{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	remaining := config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return rateLimitResult{
		allowed:   int(count) <= config.Limit,
		remaining: remaining,
		resetAt:   time.Now().Add(time.Duration(ttl) * time.Second),
	}, nil
}

// checkRateLimitInMemory spends one token from the key's bucket.
// The bucket holds Limit tokens and refills evenly over Window.
func checkRateLimitInMemory(key string, config RateLimitConfig, now time.Time) rateLimitResult {
	interval := config.Window / time.Duration(config.Limit)

	entryI, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{
		limiter: rate.NewLimiter(rate.Every(interval), config.Limit),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)

	resetAt := now
	if tokens < 1 {
		resetAt = now.Add(time.Duration((1 - tokens) * float64(interval)))
	}
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	return rateLimitResult{allowed: allowed, remaining: remaining, resetAt: resetAt}
}
