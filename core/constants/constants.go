package constants

import "time"

const (
	DefaultTimeout = 5 * time.Second

	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	// ContextTokenData is the echo context key the auth middleware stores
	// parsed token claims under.
	ContextTokenData = "token_data"

	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"

	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyLoginAttempt   = "login:attempt:"

	MaxLoginAttempts  = 5
	BlockDuration     = 15 * time.Minute
	TokenBlacklistTTL = 24 * time.Hour

	// BootstrapAdminUsername is the well-known account the startup routine
	// creates when no administrator exists.
	BootstrapAdminUsername = "admin"
)
