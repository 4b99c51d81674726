package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// DefaultHashCost is the bcrypt cost used for new passwords
const DefaultHashCost = bcrypt.DefaultCost

// absentUserPassword seeds the hash compared against for unknown names
const absentUserPassword = "no-such-user-password"

// Credential limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores anything longer
	MaxNameLength     = 64
)

// Log messages
const (
	LogMsgUserRegistered      = "User registered"
	LogMsgAuthFailed          = "Authentication failed"
	LogMsgManagerBootstrapped = "Bootstrap manager created"
)

// Storage operation names
const (
	opGetUser  = "get user"
	opSaveUser = "save user"
)
