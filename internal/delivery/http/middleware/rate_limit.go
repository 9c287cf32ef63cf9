package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/logger"
	"go-cv-backend/pkg/redis"
	"go-cv-backend/pkg/security"
)

// RateLimitConfig describes one fixed-window limiter.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket for a request (client IP by default).
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects with 503 when Redis errors instead of counting in memory.
	FailClosed bool
	// Client returns the Redis client to use, nil meaning memory only.
	Client func() *goredis.Client
}

// windowHit is the state of a bucket right after counting one request.
type windowHit struct {
	count   int
	resetAt time.Time
}

// incrWindowScript bumps a counter and arms its TTL on the first hit.
var incrWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`)

var errBadScriptReply = errors.New("unexpected rate limit script reply")

func redisHit(ctx context.Context, client *goredis.Client, key string, window time.Duration) (windowHit, error) {
	reply, err := incrWindowScript.Run(ctx, client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return windowHit{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(reply) != 2 {
		return windowHit{}, errBadScriptReply
	}
	return windowHit{
		count:   int(reply[0]),
		resetAt: time.Now().Add(time.Duration(reply[1]) * time.Second),
	}, nil
}

// memoryWindows is the fallback used when Redis is absent or failing open.
type memoryWindows struct {
	mu      sync.Mutex
	buckets map[string]*windowHit
	sweepAt time.Time
}

func newMemoryWindows() *memoryWindows {
	return &memoryWindows{buckets: make(map[string]*windowHit)}
}

func (m *memoryWindows) hit(key string, window time.Duration, now time.Time) windowHit {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.After(m.sweepAt) {
		for k, b := range m.buckets {
			if now.After(b.resetAt) {
				delete(m.buckets, k)
			}
		}
		m.sweepAt = now.Add(5 * time.Minute)
	}

	b, ok := m.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &windowHit{resetAt: now.Add(window)}
		m.buckets[key] = b
	}
	b.count++
	return *b
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// GlobalRateLimitConfig limits every route per client IP. It fails open.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "cv:rl:ip:",
		KeyFunc:   clientIPKey,
	}
}

// LoginRateLimitConfig limits login and register per client IP. It fails closed.
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "cv:rl:login:",
		FailClosed: true,
		KeyFunc:    clientIPKey,
	}
}

// RateLimitMiddleware counts requests in Redis when a client is available
// and in process memory otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 {
		config.Limit = 100
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = clientIPKey
	}
	if config.Client == nil {
		config.Client = redis.Client
	}
	memory := newMemoryWindows()

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		var (
			hit windowHit
			err error
		)
		if client := config.Client(); client != nil {
			hit, err = redisHit(c.Request.Context(), client, key, config.Window)
		} else {
			err = redis.ErrNotInitialized
		}
		if err != nil {
			if config.FailClosed && !errors.Is(err, redis.ErrNotInitialized) {
				logger.Log.Error("rate limiter unavailable", "prefix", config.KeyPrefix, "error", err)
				response.Error(c, http.StatusServiceUnavailable, "Service temporairement indisponible",
					response.ErrorBody{Kind: string(apperror.KindUnavailable)})
				c.Abort()
				return
			}
			hit = memory.hit(key, config.Window, time.Now())
		}

		remaining := max(config.Limit-hit.count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", hit.resetAt.Format(time.RFC3339))

		if hit.count > config.Limit {
			retryAfter := max(int(time.Until(hit.resetAt).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			security.DefaultLogger().LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetString(string(domain.KeyRequestID)),
				c.FullPath(),
			)
			response.Error(c, http.StatusTooManyRequests, "Trop de requêtes, réessayez plus tard",
				response.ErrorBody{Kind: string(apperror.KindTooManyRequests)})
			c.Abort()
			return
		}
		c.Next()
	}
}
