package config

import "time"

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// Environment variable names
const (
	EnvPort                     = "PORT"
	EnvLogLevel                 = "LOG_LEVEL"
	EnvLogFormat                = "LOG_FORMAT"
	EnvEnvironment              = "ENVIRONMENT"
	EnvServiceName              = "SERVICE_NAME"
	EnvVersion                  = "VERSION"
	EnvStorageDriver            = "STORAGE_DRIVER"
	EnvSQLitePath               = "SQLITE_PATH"
	EnvDBUser                   = "DB_USER"
	EnvDBPassword               = "DB_PASSWORD"
	EnvDBHost                   = "DB_HOST"
	EnvDBPort                   = "DB_PORT"
	EnvDBName                   = "DB_NAME"
	EnvDBMaxConns               = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime        = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime        = "DB_MAX_CONN_LIFETIME"
	EnvMaxRecipes               = "MAX_RECIPES"
	EnvAMQPURL                  = "AMQP_URL"
	EnvAMQPExchange             = "AMQP_EXCHANGE"
	EnvEventDeadLetterPath      = "EVENT_DEADLETTER_PATH"
	EnvUserCacheSize            = "USER_CACHE_SIZE"
	EnvUserCacheTTL             = "USER_CACHE_TTL"
	EnvBootstrapManagerName     = "BOOTSTRAP_MANAGER_NAME"
	EnvBootstrapManagerPassword = "BOOTSTRAP_MANAGER_PASSWORD"
	EnvShutdownTimeout          = "SHUTDOWN_TIMEOUT"
	EnvTrustedProxies           = "TRUSTED_PROXIES"
	EnvSeedPath                 = "SEED_PATH"
	EnvLogDir                   = "LOG_DIR"
)

// Defaults
const (
	DefaultPort                = 8080
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultEnvironment         = "dev"
	DefaultServiceName         = "coffee-pos"
	DefaultVersion             = "dev"
	DefaultStorageDriver       = StorageDriverSQLite
	DefaultSQLitePath          = "data/coffeepos.db"
	DefaultDBUser              = "postgres"
	DefaultDBPassword          = "postgres"
	DefaultDBHost              = "localhost"
	DefaultDBPort              = "5432"
	DefaultDBName              = "coffeepos"
	DefaultDBMaxConns          = 10
	DefaultDBMaxConnIdleTime   = 5 * time.Minute
	DefaultDBMaxConnLifetime   = 30 * time.Minute
	DefaultMaxRecipes          = 3
	DefaultAMQPExchange        = "coffeepos.orders"
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
	DefaultUserCacheSize       = 1000
	DefaultUserCacheTTL        = 5 * time.Minute
	DefaultShutdownTimeout     = 10 * time.Second
)

// Example values shipped in .env.example that must not reach production
const (
	ExampleDBPassword      = "change_this_secure_password"
	ExampleManagerPassword = "change_this_manager_password"
)
