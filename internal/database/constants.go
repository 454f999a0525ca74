package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// SQLite connection parameters: WAL journal so readers never block the writer,
// and a busy timeout instead of immediate SQLITE_BUSY errors
const (
	SQLiteDriverName = "sqlite"
	SQLiteDSNParams  = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
)

// Storage driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString     = "failed to parse connection string"
	ErrMsgFailedToCreatePool          = "failed to create connection pool"
	ErrMsgFailedToPingDatabase        = "failed to ping database"
	ErrMsgFailedToOpenSQLite          = "failed to open sqlite database"
	ErrMsgFailedToCreateDir           = "failed to create database directory"
	ErrMsgFailedToCreateMigrator      = "failed to create migration provider"
	ErrMsgFailedToMigrate             = "failed to apply migrations"
	ErrMsgFailedToBeginTransaction    = "failed to begin transaction"
	ErrMsgFailedToRollbackTransaction = "Failed to rollback transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgOpenedSQLite                    = "Opened sqlite database"
	LogMsgMigrationApplied                = "Applied migration"
)
