package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingSimulator   = "Starting case simulator"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageOpened      = "Storage opened"
	LogMsgStateCorrupt       = "Persisted state is unreadable, starting from defaults"
	LogMsgIdentityRestored   = "Identity restored"
	ErrMsgOpenStorage        = "failed to open storage"
	ErrMsgMigrateStorage     = "failed to migrate storage"
	ErrMsgLoadEconomy        = "failed to load economy state"
	ErrMsgLoadCatalog        = "failed to load catalog"
	ErrMsgBuildService       = "failed to build service"
	ErrMsgUnknownDriverFmt   = "unknown storage driver %q"
	ErrMsgRestoreIdentityFmt = "failed to restore identity: %v"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
	LogMsgPlayerWelcomed             = "Player logged in"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedRegisterGauges       = "failed to register SSE gauges"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgFlushingReveals      = "Disclosing pending reveals..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStorageCloseFailed   = "Storage close failed"
)
