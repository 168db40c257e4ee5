package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions holds client settings and the per-call timeout.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	OpTimeout time.Duration
	Prefix    string
}

// RedisCache stores JSON-encoded values in redis.
type RedisCache[V any] struct {
	client    *redis.Client
	opTimeout time.Duration
	prefix    string
}

func NewRedisCache[V any](opts *RedisOptions) *RedisCache[V] {
	timeout := opts.OpTimeout
	if timeout <= 0 {
		timeout = 50 * time.Millisecond
	}
	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		PoolSize:        opts.PoolSize,
		MaxRetries:      2,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 256 * time.Millisecond,
	})
	return &RedisCache[V]{client: client, opTimeout: timeout, prefix: opts.Prefix}
}

func (r *RedisCache[V]) Close() error {
	return r.client.Close()
}

func (r *RedisCache[V]) key(k string) string {
	return joinKey(r.prefix, k)
}

func (r *RedisCache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrCacheMiss
	}
	if err != nil {
		return zero, err
	}

	var val V
	if err := json.Unmarshal(data, &val); err != nil {
		return zero, err
	}
	return val, nil
}

func (r *RedisCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *RedisCache[V]) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.client.Del(ctx, r.key(key)).Err()
}
