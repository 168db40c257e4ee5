package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores values of type V under string keys.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// Config selects and tunes a backend.
type Config struct {
	Backend   string        `env:"CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
	Namespace string        `env:"CACHE_NAMESPACE" env-default:"placement"`
	RedisAddr string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" env-default:"0"`
	OpTimeout time.Duration `env:"CACHE_OP_TIMEOUT" env-default:"50ms"`
}

// New builds a cache for cfg.Backend. Each typed cache gets its own key
// prefix so two caches can share one redis database.
func New[V any](cfg Config, prefix string) (Cache[V], error) {
	switch cfg.Backend {
	case RedisBackend:
		return NewRedisCache[V](&RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPass,
			DB:        cfg.RedisDB,
			OpTimeout: cfg.OpTimeout,
			Prefix:    joinKey(cfg.Namespace, prefix),
		}), nil
	case MemoryBackend, "":
		return NewMemoryCache[V](time.Minute), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}

func joinKey(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ":"
		}
		out += p
	}
	return out
}
