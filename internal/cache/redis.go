package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// RedisClient is the subset of *redis.Client the cache uses
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisConfig configures the Redis-backed cache
type RedisConfig struct {
	// Prefix namespaces every key, e.g. "pitch:"
	Prefix string
	// BreakerTimeout is how long the breaker stays open before probing again
	BreakerTimeout time.Duration
	// BreakerFailures is the consecutive failure count that opens the breaker
	BreakerFailures uint32
	Logger          *zap.Logger
}

// Redis is a Cache backed by Redis. Calls go through a circuit breaker so an
// unreachable server fails fast instead of stalling every request.
type Redis struct {
	client  RedisClient
	breaker *gobreaker.CircuitBreaker
	prefix  string
}

// NewRedis wraps a Redis client
func NewRedis(client RedisClient, cfg RedisConfig) *Redis {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sugar := logger.Sugar()
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// a caller that went away says nothing about the server
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			sugar.Warnw("Cache circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Redis{client: client, breaker: breaker, prefix: cfg.Prefix}
}

// Get returns the cached bytes; a missing key is not an error
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := r.breaker.Execute(func() (interface{}, error) {
		b, err := r.client.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if res == nil {
		return nil, false, nil
	}
	return res.([]byte), true, nil
}

// Set stores value under key for ttl
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Set(ctx, r.prefix+key, value, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys in one round trip
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefix + k
	}
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Del(ctx, prefixed...).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping checks connectivity, bypassing the breaker so readiness reflects the server
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// State reports the breaker state for health output
func (r *Redis) State() string {
	return r.breaker.State().String()
}
