package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ActionLimiter caps expensive per-user actions such as image uploads
// with a Redis sliding window. Without Redis every action is allowed.
type ActionLimiter struct {
	name   string
	limit  int
	window time.Duration
	client func() *goredis.Client
}

// KEYS[1] = window key, ARGV = limit, window seconds, now (unix ms), member.
// Returns 1 if allowed, 0 if limited.
const slidingWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2]) * 1000
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
    return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`

func NewActionLimiter(name string, limit int, window time.Duration, client func() *goredis.Client) *ActionLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Hour
	}
	if client == nil {
		client = func() *goredis.Client { return nil }
	}
	return &ActionLimiter{name: name, limit: limit, window: window, client: client}
}

// Allow records one action for subject and reports whether it is within the limit.
func (l *ActionLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	client := l.client()
	if client == nil {
		return true, nil
	}
	now := time.Now().UnixMilli()
	key := fmt.Sprintf("cv:limit:%s:%s", l.name, subject)
	member := fmt.Sprintf("%d-%s", now, HashValue(fmt.Sprint(now, subject)))

	res, err := client.Eval(ctx, slidingWindowScript, []string{key},
		l.limit, int(l.window.Seconds()), now, member).Result()
	if err != nil {
		return false, fmt.Errorf("%s limiter: %w", l.name, err)
	}
	allowed, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("%s limiter: unexpected script result %T", l.name, res)
	}
	return allowed == 1, nil
}
