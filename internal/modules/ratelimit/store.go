// README: Fixed-window request counter backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chichat:ratelimit:%s:%d"

// Decision describes the state of one client's window after counting a request.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Store struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewStore counts at most limit requests per client per window.
func NewStore(redis *redis.Client, limit int, window time.Duration) *Store {
	if window <= 0 {
		window = time.Minute
	}
	return &Store{redis: redis, limit: limit, window: window, now: time.Now}
}

// Allow counts one request for clientKey. Each window gets its own key so the TTL only
// garbage-collects old counters.
func (s *Store) Allow(ctx context.Context, clientKey string) (Decision, error) {
	now := s.now()
	windowStart := now.Truncate(s.window)
	key := fmt.Sprintf(keyPrefix, clientKey, windowStart.Unix())

	pipe := s.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("ratelimit: count request: %w", err)
	}

	return decide(incr.Val(), s.limit, windowStart.Add(s.window)), nil
}

func decide(count int64, limit int, resetAt time.Time) Decision {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
