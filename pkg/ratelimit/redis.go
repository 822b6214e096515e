package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR and PEXPIRE run in one script so a key can never be left without a TTL.
var fixedWindowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Redis is the multi-instance Limiter. Windows live in Redis keys that expire
// on their own, so no sweeper is needed.
type Redis struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

// NewRedis creates a Limiter storing counters under prefix.
func NewRedis(client redis.Scripter, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *Redis) Check(ctx context.Context, identifier string, limit int, window time.Duration) (Result, error) {
	if err := validate(limit, window); err != nil {
		return Result{}, err
	}

	windowMs := window.Milliseconds()
	if windowMs < 1 {
		windowMs = 1
	}

	vals, err := fixedWindowScript.Run(ctx, r.client, []string{r.prefix + identifier}, windowMs).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit.Redis.Check: %w", err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("ratelimit.Redis.Check: unexpected script reply %v", vals)
	}

	count, ttlMs := int(vals[0]), vals[1]
	now := r.now()
	resetAt := now.Add(time.Duration(ttlMs) * time.Millisecond)

	if count > limit {
		return Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfterSeconds(resetAt, now),
		}, nil
	}

	return Result{Allowed: true, Limit: limit, Remaining: limit - count, ResetAt: resetAt}, nil
}
