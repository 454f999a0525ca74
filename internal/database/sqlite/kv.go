// Package sqlite implements the key-value store on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/repository"
)

const (
	queryGetValue = `SELECT value FROM economy_kv WHERE key = ?`

	queryUpsertValue = `
		INSERT INTO economy_kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`
)

// KVRepository stores economy keys in the economy_kv table
type KVRepository struct {
	db *sql.DB
}

var _ repository.KeyValue = (*KVRepository)(nil)

// NewKVRepository creates a repository on an open, migrated database
func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageUnavailable, op, err)
}

// placeholders returns "?, ?, ?" for n arguments
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(keys []string) []any {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}

// Get returns a single value
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, queryGetValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get value", err)
	}
	return value, true, nil
}

// GetMany returns the subset of keys that exist
func (r *KVRepository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query := `SELECT key, value FROM economy_kv WHERE key IN (` + placeholders(len(keys)) + `)`
	rows, err := r.db.QueryContext(ctx, query, toArgs(keys)...)
	if err != nil {
		return nil, unavailable("get values", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, unavailable("get values", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("get values", err)
	}
	return out, nil
}

// SetMany upserts every value in a single transaction
func (r *KVRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, queryUpsertValue)
	if err != nil {
		return unavailable("prepare upsert", err)
	}
	defer stmt.Close()

	for k, v := range values {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return unavailable("upsert value", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit transaction", err)
	}
	return nil
}

// Delete removes keys; absent keys are ignored
func (r *KVRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query := `DELETE FROM economy_kv WHERE key IN (` + placeholders(len(keys)) + `)`
	if _, err := r.db.ExecContext(ctx, query, toArgs(keys)...); err != nil {
		return unavailable("delete values", err)
	}
	return nil
}

// Ping checks the database handle
func (r *KVRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
