package repository

import "context"

// KeyValue is a flat string-keyed store. Missing keys are reported as
// not found, never as errors.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	// GetMany returns only the keys that exist
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// SetMany writes all values atomically
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Pinger is implemented by stores backed by a connection
type Pinger interface {
	Ping(ctx context.Context) error
}
