// Package cached wraps a KeyValue with a write-through LRU read cache.
package cached

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CaseSim_Go/internal/repository"
)

// entry remembers misses too, so repeated reads of an absent key stay local
type entry struct {
	value string
	found bool
}

// KVRepository serves reads from memory and forwards every write to the
// backend before touching the cache
type KVRepository struct {
	next repository.KeyValue
	lru  *expirable.LRU[string, entry]
}

var _ repository.KeyValue = (*KVRepository)(nil)

// NewKVRepository wraps next. size bounds the number of cached keys and ttl
// bounds staleness when another process writes the same store.
func NewKVRepository(next repository.KeyValue, size int, ttl time.Duration) *KVRepository {
	return &KVRepository{
		next: next,
		lru:  expirable.NewLRU[string, entry](size, nil, ttl),
	}
}

// Get returns a cached value or loads it from the backend
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if e, ok := r.lru.Get(key); ok {
		return e.value, e.found, nil
	}

	v, found, err := r.next.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	r.lru.Add(key, entry{value: v, found: found})
	return v, found, nil
}

// GetMany serves what it can from cache and loads the rest in one call
func (r *KVRepository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	var missing []string
	for _, k := range keys {
		e, ok := r.lru.Get(k)
		if !ok {
			missing = append(missing, k)
			continue
		}
		if e.found {
			out[k] = e.value
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := r.next.GetMany(ctx, missing...)
	if err != nil {
		return nil, err
	}
	for _, k := range missing {
		v, found := loaded[k]
		r.lru.Add(k, entry{value: v, found: found})
		if found {
			out[k] = v
		}
	}
	return out, nil
}

// SetMany writes through; the cache only changes after the backend accepted the write
func (r *KVRepository) SetMany(ctx context.Context, values map[string]string) error {
	if err := r.next.SetMany(ctx, values); err != nil {
		// The backend may have partially applied the write
		for k := range values {
			r.lru.Remove(k)
		}
		return err
	}
	for k, v := range values {
		r.lru.Add(k, entry{value: v, found: true})
	}
	return nil
}

// Delete removes keys from the backend and the cache
func (r *KVRepository) Delete(ctx context.Context, keys ...string) error {
	err := r.next.Delete(ctx, keys...)
	for _, k := range keys {
		r.lru.Remove(k)
	}
	return err
}

// Ping forwards to the backend when it supports it
func (r *KVRepository) Ping(ctx context.Context) error {
	if p, ok := r.next.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Purge drops every cached entry
func (r *KVRepository) Purge() {
	r.lru.Purge()
}

// Len reports the number of cached keys
func (r *KVRepository) Len() int {
	return r.lru.Len()
}
