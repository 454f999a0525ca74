// Package postgres implements the key-value store on PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CaseSim_Go/internal/repository"
)

// KVRepository stores economy keys in the economy_kv table
type KVRepository struct {
	db *pgxpool.Pool
}

var _ repository.KeyValue = (*KVRepository)(nil)

// NewKVRepository creates a repository on an existing pool
func NewKVRepository(db *pgxpool.Pool) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns a single value
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, queryGetValue, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable(opGet, err)
	}
	return value, true, nil
}

// GetMany returns the subset of keys that exist
func (r *KVRepository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, queryGetValues, keys)
	if err != nil {
		return nil, unavailable(opGetMany, err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, unavailable(opGetMany, err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(opGetMany, err)
	}
	return out, nil
}

// SetMany upserts every value in a single transaction
func (r *KVRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return unavailable(opBegin, err)
	}
	defer SafeRollback(ctx, tx)

	batch := &pgx.Batch{}
	for k, v := range values {
		batch.Queue(queryUpsertValue, k, v)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return unavailable(opUpsert, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return unavailable(opCommit, err)
	}
	return nil
}

// Delete removes keys; absent keys are ignored
func (r *KVRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, queryDeleteValues, keys); err != nil {
		return unavailable(opDelete, err)
	}
	return nil
}

// Ping checks connectivity
func (r *KVRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
