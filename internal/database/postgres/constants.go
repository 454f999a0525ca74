package postgres

// SQL statements for the economy key-value table
const (
	queryGetValue = `SELECT value FROM economy_kv WHERE key = $1`

	queryGetValues = `SELECT key, value FROM economy_kv WHERE key = ANY($1)`

	queryUpsertValue = `
		INSERT INTO economy_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	queryDeleteValues = `DELETE FROM economy_kv WHERE key = ANY($1)`
)

// Operation names used in wrapped errors
const (
	opGet     = "get value"
	opGetMany = "get values"
	opBegin   = "begin transaction"
	opUpsert  = "upsert value"
	opCommit  = "commit transaction"
	opDelete  = "delete values"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
)
