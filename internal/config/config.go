package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/CoffeePOS_Go/internal/database"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	StorageDriver     string
	SQLitePath        string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	MaxRecipes int

	AMQPURL             string // empty disables the broker
	AMQPExchange        string
	EventDeadLetterPath string

	UserCacheSize int
	UserCacheTTL  time.Duration

	BootstrapManagerName     string
	BootstrapManagerPassword string

	SeedPath string // optional JSON menu applied at startup
	LogDir   string // empty logs to stdout only

	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

// Load loads the configuration from environment variables. Malformed numbers
// and durations are errors rather than silently defaulted.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:                 getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:                getEnv(EnvLogFormat, DefaultLogFormat),
		Environment:              getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:              getEnv(EnvServiceName, DefaultServiceName),
		Version:                  getEnv(EnvVersion, DefaultVersion),
		StorageDriver:            getEnv(EnvStorageDriver, DefaultStorageDriver),
		SQLitePath:               getEnv(EnvSQLitePath, DefaultSQLitePath),
		DBUser:                   getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:               getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:                   getEnv(EnvDBHost, DefaultDBHost),
		DBPort:                   getEnv(EnvDBPort, DefaultDBPort),
		DBName:                   getEnv(EnvDBName, DefaultDBName),
		AMQPURL:                  getEnv(EnvAMQPURL, ""),
		AMQPExchange:             getEnv(EnvAMQPExchange, DefaultAMQPExchange),
		EventDeadLetterPath:      getEnv(EnvEventDeadLetterPath, DefaultEventDeadLetterPath),
		BootstrapManagerName:     getEnv(EnvBootstrapManagerName, ""),
		BootstrapManagerPassword: getEnv(EnvBootstrapManagerPassword, ""),
		SeedPath:                 getEnv(EnvSeedPath, ""),
		LogDir:                   getEnv(EnvLogDir, ""),
		TrustedProxies:           getEnvAsList(EnvTrustedProxies),
	}

	var errs []error
	intVar := func(dst *int, key string, def int) {
		v, err := getEnvAsInt(key, def)
		errs = append(errs, err)
		*dst = v
	}
	durationVar := func(dst *time.Duration, key string, def time.Duration) {
		v, err := getEnvAsDuration(key, def)
		errs = append(errs, err)
		*dst = v
	}

	intVar(&cfg.Port, EnvPort, DefaultPort)
	intVar(&cfg.DBMaxConns, EnvDBMaxConns, DefaultDBMaxConns)
	intVar(&cfg.MaxRecipes, EnvMaxRecipes, DefaultMaxRecipes)
	intVar(&cfg.UserCacheSize, EnvUserCacheSize, DefaultUserCacheSize)
	durationVar(&cfg.DBMaxConnIdleTime, EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime)
	durationVar(&cfg.DBMaxConnLifetime, EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime)
	durationVar(&cfg.UserCacheTTL, EnvUserCacheTTL, DefaultUserCacheTTL)
	durationVar(&cfg.ShutdownTimeout, EnvShutdownTimeout, DefaultShutdownTimeout)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return database.ConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// HasBootstrapManager reports whether a first manager account is configured
func (c *Config) HasBootstrapManager() bool {
	return c.BootstrapManagerName != "" && c.BootstrapManagerPassword != ""
}
