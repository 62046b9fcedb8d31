package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func init() {
	Register("redis", newRedisStore)
}

// redisStore implements the Store interface using Redis/Valkey.
//
// All entries live in a single Hash keyed by the configured namespace
// ("{namespace}:data", field = user key, value = bytes), so progress and
// preference records for every user share one Redis key and Len is a cheap
// HLEN. When a TTL is configured, per-field expiry is set via HPEXPIRE
// (Redis 7.4+ / Valkey 8+); with the default zero TTL records persist until
// overwritten, which matches the last-write-wins progress contract.
type redisStore struct {
	client  *redis.Client
	ttl     time.Duration
	logger  Logger
	dataKey string // hash key, e.g. "animind:data"
}

func newRedisStore(cfg ProviderConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Verify connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisStore{
		client:  client,
		ttl:     cfg.TTL,
		logger:  cfg.Logger,
		dataKey: cfg.Namespace + ":data",
	}, nil
}

func (r *redisStore) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := r.client.HGet(ctx, r.dataKey, key).Bytes()
	if err != nil {
		// redis.Nil means the field doesn't exist — a normal miss.
		if !errors.Is(err, redis.Nil) {
			r.logError("redis store Get failed", err)
		}
		return nil, false
	}
	return result, true
}

func (r *redisStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.HSet(ctx, r.dataKey, key, value).Err(); err != nil {
		r.logError("redis store Set failed", err)
		return fmt.Errorf("redis store Set: %w", err)
	}

	if r.ttl > 0 {
		if err := r.client.HPExpire(ctx, r.dataKey, r.ttl, key).Err(); err != nil {
			r.logError("redis store HPEXPIRE failed", err)
		}
	}

	return nil
}

func (r *redisStore) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := r.client.HExists(ctx, r.dataKey, key).Result()
	if err != nil {
		r.logError("redis store Contains failed", err)
	}
	return err == nil && n
}

func (r *redisStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := r.client.HLen(ctx, r.dataKey).Result()
	if err != nil {
		r.logError("redis store Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
