package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks ranges and enumerations after parsing
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("%s must be between 1 and 65535 (got %d)", EnvPort, c.Port))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverSQLite, StorageDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("%s must be one of %s, %s or %s (got %q)",
			EnvStorageDriver, StorageDriverPostgres, StorageDriverSQLite, StorageDriverMemory, c.StorageDriver))
	}
	if c.MaxRecipes < 1 {
		problems = append(problems, fmt.Sprintf("%s must be at least 1 (got %d)", EnvMaxRecipes, c.MaxRecipes))
	}
	if c.DBMaxConns < 1 {
		problems = append(problems, fmt.Sprintf("%s must be at least 1 (got %d)", EnvDBMaxConns, c.DBMaxConns))
	}
	if c.UserCacheSize < 1 {
		problems = append(problems, fmt.Sprintf("%s must be at least 1 (got %d)", EnvUserCacheSize, c.UserCacheSize))
	}
	if (c.BootstrapManagerName == "") != (c.BootstrapManagerPassword == "") {
		problems = append(problems, fmt.Sprintf("%s and %s must be set together", EnvBootstrapManagerName, EnvBootstrapManagerPassword))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal issues, like example secrets left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StorageDriver == StorageDriverPostgres && c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, EnvDBPassword+" appears to be using the example value - please use a secure password")
	}
	if c.BootstrapManagerPassword == ExampleManagerPassword {
		warnings = append(warnings, EnvBootstrapManagerPassword+" appears to be using the example value")
	}
	if c.StorageDriver == StorageDriverMemory && c.Environment == "production" {
		warnings = append(warnings, "memory storage loses all data on restart")
	}

	return warnings
}
