// Package ratelimit limits how often a client may trigger model calls.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when the limiter has no Redis client
var ErrUnavailable = errors.New("redis client not available")

// Config defines a fixed-window limit
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultConfig returns the default limit of 30 model calls per minute
func DefaultConfig() Config {
	return Config{
		MaxRequests: 30,
		Window:      time.Minute,
	}
}

// RateLimiter counts requests per client in Redis
type RateLimiter struct {
	rdb    *redis.Client
	config Config
}

func NewRateLimiter(rdb *redis.Client, config Config) *RateLimiter {
	if config.MaxRequests <= 0 || config.Window <= 0 {
		config = DefaultConfig()
	}
	return &RateLimiter{rdb: rdb, config: config}
}

// Key is the Redis key holding a client's request count
func Key(client string) string {
	return fmt.Sprintf("rate:llm:%s", client)
}

// Allow records a request for client and reports whether it is within the
// limit. The window starts with the client's first request. The key is
// created with its expiry and incremented in one transaction, so a counter
// can never outlive its window.
func (rl *RateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return false, ErrUnavailable
	}

	key := Key(client)
	var count *redis.IntCmd
	_, err := rl.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, rl.config.Window)
		count = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, err
	}

	return count.Val() <= int64(rl.config.MaxRequests), nil
}

// Window returns the configured window, used for Retry-After
func (rl *RateLimiter) Window() time.Duration {
	return rl.config.Window
}
