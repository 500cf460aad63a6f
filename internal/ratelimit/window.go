package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window limits simulations to max per period across every service
// instance sharing the Redis
type Window struct {
	client *redis.Client
	prefix string
	max    int64
	period time.Duration
	now    func() time.Time
}

// NewWindow creates a fixed-window limiter allowing max requests per period
func NewWindow(client *redis.Client, prefix string, max int, period time.Duration) *Window {
	if period <= 0 {
		period = time.Minute
	}
	return &Window{
		client: client,
		prefix: prefix,
		max:    int64(max),
		period: period,
		now:    time.Now,
	}
}

// Key returns the counter key for the window containing t
func (w *Window) Key(t time.Time) string {
	return fmt.Sprintf("%s:ratelimit:%d", w.prefix, t.UnixNano()/int64(w.period))
}

// Allow consumes one request from the current window
func (w *Window) Allow(ctx context.Context) (bool, error) {
	key := w.Key(w.now())

	pipe := w.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*w.period)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment window: %w", err)
	}

	return count.Val() <= w.max, nil
}

// Remaining returns how many requests are left in the current window
func (w *Window) Remaining(ctx context.Context) (int64, error) {
	used, err := w.client.Get(ctx, w.Key(w.now())).Int64()
	if err != nil {
		if err == redis.Nil {
			return w.max, nil
		}
		return 0, fmt.Errorf("failed to get window: %w", err)
	}
	if used > w.max {
		return 0, nil
	}
	return w.max - used, nil
}
