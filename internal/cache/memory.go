package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local cache. Expired entries are dropped on read
// and by a background sweep.
type MemoryCache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryCache starts a cache that sweeps expired entries every interval.
// A non-positive interval disables the sweep.
func NewMemoryCache[V any](interval time.Duration) *MemoryCache[V] {
	mc := &MemoryCache[V]{
		items: make(map[string]entry[V]),
		stop:  make(chan struct{}),
	}
	if interval > 0 {
		go mc.sweep(interval)
	}
	return mc
}

// Close stops the sweeper.
func (mc *MemoryCache[V]) Close() {
	mc.once.Do(func() { close(mc.stop) })
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	mc.mu.RLock()
	e, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		var zero V
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	mc.mu.Lock()
	mc.items[key] = e
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (mc *MemoryCache[V]) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}

func (mc *MemoryCache[V]) purge(now time.Time) {
	mc.mu.Lock()
	for k, e := range mc.items {
		if e.expired(now) {
			delete(mc.items, k)
		}
	}
	mc.mu.Unlock()
}

func (mc *MemoryCache[V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			mc.purge(now)
		case <-mc.stop:
			return
		}
	}
}
