package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0o755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0o640
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

	// LogFileRetentionCount is the number of older session logs kept beside the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingCoffeePOS   = "Starting coffee POS"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageOpened = "Storage opened"
	LogMsgStateLoaded   = "Persisted state loaded"

	ErrMsgUnknownDriver     = "unknown storage driver"
	ErrMsgFailedOpenStorage = "failed to open storage"
	ErrMsgFailedLoadState   = "failed to load persisted state"
	ErrMsgFailedEnsureAdmin = "failed to ensure bootstrap manager"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the number of redelivery attempts for events bound for the broker
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is used when the configured path is empty
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgBrokerDisabled                 = "AMQP_URL not set, order events stay in process"
	LogMsgOrderEvent                     = "Order event"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedConnectBroker            = "failed to connect to event broker"
)

// =============================================================================
// Seed Sync Messages
// =============================================================================

const (
	LogMsgSyncingSeed   = "Syncing menu from seed file..."
	LogMsgSeedSynced    = "Seed synced"
	LogMsgSeedUnchanged = "Seed already applied, nothing to do"

	ErrMsgInvalidSeed       = "invalid seed file"
	ErrMsgFailedLoadSeed    = "failed to load seed file"
	ErrMsgFailedApplySeed   = "failed to apply seed"
	ErrMsgSeedUnknownRecipe = "seed recipe references an ingredient missing from the catalog"
)

// SeedCallerName identifies seed writes in the logs
const SeedCallerName = "seed"

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgBrokerCloseFailed          = "Event broker close failed"
	LogMsgStorageCloseFailed         = "Storage close failed"
)
