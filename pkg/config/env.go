package config

const (
	EnvPrefix = "GATHERLY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "GATHERLY_APP_ENV"
	EnvPort     = "GATHERLY_APP_PORT"
	EnvLogLevel = "GATHERLY_LOG_LEVEL"

	EnvDBDSN  = "GATHERLY_DB_DSN"
	EnvDBHost = "GATHERLY_DB_HOST"
	EnvDBUser = "GATHERLY_DB_USER"
	EnvDBName = "GATHERLY_DB_NAME"

	EnvRedisURL = "GATHERLY_REDIS_URL"

	EnvJWTSecret    = "GATHERLY_JWT_SECRET"
	EnvJWTIssuer    = "GATHERLY_JWT_ISSUER"
	EnvJWTAccessTTL = "GATHERLY_JWT_ACCESS_TTL"

	EnvRosterPageSize      = "GATHERLY_ROSTER_PAGE_SIZE"
	EnvRosterRoleCacheTTL  = "GATHERLY_ROSTER_ROLE_CACHE_TTL"
	EnvRosterLookupTimeout = "GATHERLY_ROSTER_LOOKUP_TIMEOUT"

	EnvActionRateWindow = "GATHERLY_ACTION_RATE_LIMIT_WINDOW"
	EnvActionRateLimit  = "GATHERLY_ACTION_RATE_LIMIT"
)
