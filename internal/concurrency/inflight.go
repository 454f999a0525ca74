package concurrency

import (
	"sort"
	"sync"
)

// InFlight tracks named actions that may have at most one instance running.
// A second TryAcquire for a held key fails immediately instead of waiting.
type InFlight struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewInFlight creates an empty guard
func NewInFlight() *InFlight {
	return &InFlight{held: make(map[string]struct{})}
}

// TryAcquire marks key as running. It returns false if key is already held.
func (f *InFlight) TryAcquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.held[key]; ok {
		return false
	}
	f.held[key] = struct{}{}
	return true
}

// Release frees key. Releasing a key that is not held is a no-op.
func (f *InFlight) Release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
}

// IsHeld reports whether key is currently running
func (f *InFlight) IsHeld(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.held[key]
	return ok
}

// Active returns the held keys in sorted order
func (f *InFlight) Active() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.held))
	for k := range f.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
