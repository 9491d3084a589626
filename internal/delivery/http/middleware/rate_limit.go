package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"solar-quote-backend/pkg/apperror"
	"solar-quote-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const msgTooManyQuotes = "Too many quote requests. Please try again later."

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis (default: "rl:quote:")
	KeyPrefix string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
}

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

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter counts requests per client in a Redis fixed window and falls
// back to an in-memory token bucket when Redis is absent or failing.
type RateLimiter struct {
	redis  *goredis.Client
	config RateLimitConfig

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter creates a limiter. client may be nil.
func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	if config.Limit < 1 {
		config.Limit = 1
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:quote:"
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	return &RateLimiter{
		redis:     client,
		config:    config,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

// Store names the primary counter store: "redis" or "memory".
func (rl *RateLimiter) Store() string {
	if rl.redis != nil {
		return "redis"
	}
	return "memory"
}

// Middleware rejects requests over the limit with a retryable 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.config.KeyFunc(c)
		now := time.Now()

		allowed, remaining, resetAt := rl.take(c.Request.Context(), key, now)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if !allowed {
			retryAfter := int(math.Ceil(resetAt.Sub(now).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.WarnContext(c.Request.Context(), "Rate limit triggered",
				"client_ip", c.ClientIP(),
				"path", c.FullPath(),
				"store", rl.Store(),
				"request_id", c.GetString("RequestID"),
			)

			_ = c.Error(apperror.TooManyRequests(msgTooManyQuotes))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) take(ctx context.Context, key string, now time.Time) (bool, int, time.Time) {
	if rl.redis != nil {
		count, resetAt, err := rl.takeRedis(ctx, key, now)
		if err == nil {
			return count <= rl.config.Limit, max(rl.config.Limit-count, 0), resetAt
		}
		// Fail open to the in-memory limiter
		logger.Log.WarnContext(ctx, "Rate limit store unavailable, using in-memory fallback",
			"error", err.Error(),
		)
	}
	return rl.takeMemory(key, now)
}

// takeRedis checks rate limit using Redis with atomic Lua script
func (rl *RateLimiter) takeRedis(ctx context.Context, key string, now time.Time) (int, time.Time, error) {
	ttlSeconds := int(rl.config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, rl.redis, []string{rl.config.KeyPrefix + key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, errors.New("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), now.Add(time.Duration(ttl) * time.Second), nil
}

// takeMemory spends one token from the client's bucket. The bucket refills
// Limit tokens per Window.
func (rl *RateLimiter) takeMemory(key string, now time.Time) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	v, ok := rl.visitors[key]
	if !ok {
		every := rl.config.Window / time.Duration(rl.config.Limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), rl.config.Limit)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	allowed := v.limiter.AllowN(now, 1)
	tokens := v.limiter.TokensAt(now)
	remaining := max(int(tokens), 0)

	// time until the next whole token is available
	missing := 1 - (tokens - math.Floor(tokens))
	if tokens >= 1 {
		missing = 0
	}
	resetAt := now.Add(time.Duration(missing / float64(v.limiter.Limit()) * float64(time.Second)))

	return allowed, remaining, resetAt
}

// sweep drops buckets idle for a few windows. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.config.Window {
		return
	}
	rl.lastSweep = now
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > 3*rl.config.Window {
			delete(rl.visitors, key)
		}
	}
}
