// Package memory is a process-local KeyValue used by tests and the
// memory storage driver.
package memory

import (
	"context"
	"sync"

	"github.com/osse101/CaseSim_Go/internal/repository"
)

// KVRepository is a mutex-guarded map
type KVRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ repository.KeyValue = (*KVRepository)(nil)

// NewKVRepository creates an empty store
func NewKVRepository() *KVRepository {
	return &KVRepository{data: make(map[string]string)}
}

// Get returns a single value
func (r *KVRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

// GetMany returns the subset of keys that exist
func (r *KVRepository) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// SetMany writes all values under one lock
func (r *KVRepository) SetMany(_ context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range values {
		r.data[k] = v
	}
	return nil
}

// Delete removes keys
func (r *KVRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.data, k)
	}
	return nil
}
