// Package rate provides a Redis-backed fixed-window counter that throttles
// repeated failed logins per account identifier.
//
// Window semantics: INCR plus a conditional EXPIRE on the first hit. A nil
// *Limiter disables throttling entirely, so the server runs without Redis.
package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited is returned when the attempt budget for the window is
	// spent.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps transport failures talking to Redis.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// Config holds the limiter budget.
type Config struct {
	MaxAttempts int
	Cooldown    time.Duration
}

// Limiter counts failed login attempts per identifier in Redis.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a Limiter backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{redis: redisClient, config: cfg}
}

// Allow reports whether identifier still has login attempts left in the
// current window. A missing counter means no recorded failures.
func (l *Limiter) Allow(ctx context.Context, identifier string) error {
	if l == nil {
		return nil
	}

	count, err := l.redis.Get(ctx, key(identifier)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count >= int64(l.config.MaxAttempts) {
		return ErrRateLimited
	}
	return nil
}

// RecordFailure counts one failed attempt for identifier. The window TTL is
// set only on the first failure in the window.
func (l *Limiter) RecordFailure(ctx context.Context, identifier string) error {
	if l == nil {
		return nil
	}

	count, err := l.redis.Incr(ctx, key(identifier)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key(identifier), l.config.Cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}
	return nil
}

// Reset clears the counter for identifier after a successful login.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	if l == nil {
		return nil
	}
	if err := l.redis.Del(ctx, key(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func key(identifier string) string {
	return "login:" + identifier
}
