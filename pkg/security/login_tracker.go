package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login throttling
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window in which failures are counted
	BlockDuration time.Duration // block length once MaxAttempts is reached
	TrackIP       bool          // also count and block by client IP
}

func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		TrackIP:       true,
	}
}

// LoginTracker counts failed logins in Redis and blocks abusive emails/IPs.
// Without a Redis client it fails open: nothing is counted and nothing is blocked.
type LoginTracker struct {
	config LoginTrackerConfig
	client func() *goredis.Client
	logger *SecurityLogger
}

func NewLoginTracker(config LoginTrackerConfig, client func() *goredis.Client, logger *SecurityLogger) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = DefaultLoginTrackerConfig().AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = DefaultLoginTrackerConfig().BlockDuration
	}
	if client == nil {
		client = func() *goredis.Client { return nil }
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	return &LoginTracker{config: config, client: client, logger: logger}
}

const (
	failUserPrefix    = "cv:login:fail:user:"
	failIPPrefix      = "cv:login:fail:ip:"
	blockedUserPrefix = "cv:login:blocked:user:"
	blockedIPPrefix   = "cv:login:blocked:ip:"
)

// KEYS[1] = counter key, ARGV[1] = TTL seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked reports whether the email or IP is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	client := lt.client()
	if client == nil {
		return false, nil
	}

	keys := []string{blockedUserPrefix + normalizeEmail(email)}
	if lt.config.TrackIP && ip != "" {
		keys = append(keys, blockedIPPrefix+ip)
	}
	n, err := client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("check login block: %w", err)
	}
	if n > 0 {
		lt.logger.LogLoginBlocked(ctx, email, ip)
	}
	return n > 0, nil
}

// RecordFailure counts a failed attempt and blocks once the threshold is reached.
// It returns whether a block is now in place.
func (lt *LoginTracker) RecordFailure(ctx context.Context, email, ip, reason string) (bool, error) {
	lt.logger.LogLoginFailed(ctx, email, ip, reason)

	client := lt.client()
	if client == nil {
		return false, nil
	}

	ttl := int(lt.config.AttemptWindow.Seconds())
	count, err := lt.increment(ctx, client, failUserPrefix+normalizeEmail(email), ttl)
	if err != nil {
		return false, fmt.Errorf("count failed login: %w", err)
	}
	if lt.config.TrackIP && ip != "" {
		// best effort
		_, _ = lt.increment(ctx, client, failIPPrefix+ip, ttl)
	}

	if count < lt.config.MaxAttempts {
		return false, nil
	}
	if err := client.Set(ctx, blockedUserPrefix+normalizeEmail(email), "1", lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("create login block: %w", err)
	}
	if lt.config.TrackIP && ip != "" {
		_ = client.Set(ctx, blockedIPPrefix+ip, "1", lt.config.BlockDuration).Err()
	}
	lt.logger.LogBlockCreated(ctx, "email", email, ip, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

func (lt *LoginTracker) increment(ctx context.Context, client *goredis.Client, key string, ttlSeconds int) (int, error) {
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// Clear drops failure counters after a successful login.
func (lt *LoginTracker) Clear(ctx context.Context, email, ip string) error {
	client := lt.client()
	if client == nil {
		return nil
	}
	keys := []string{failUserPrefix + normalizeEmail(email)}
	if lt.config.TrackIP && ip != "" {
		keys = append(keys, failIPPrefix+ip)
	}
	return client.Del(ctx, keys...).Err()
}
