package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "VELOUR_APP_ENV"
	EnvPort     = "VELOUR_APP_PORT"
	EnvDBDSN    = "VELOUR_DB_DSN"
	EnvDBDriver = "VELOUR_DB_DRIVER"
	EnvDBHost   = "VELOUR_DB_HOST"
	EnvDBUser   = "VELOUR_DB_USER"
	EnvDBName   = "VELOUR_DB_NAME"
	EnvRedisURL = "VELOUR_REDIS_URL"

	EnvJWTSecret              = "VELOUR_JWT_SECRET"
	EnvJWTIssuer              = "VELOUR_JWT_ISSUER"
	EnvJWTExpMins             = "VELOUR_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "VELOUR_REFRESH_TOKEN_TTL_MINUTES"

	EnvInventoryUnitCostRatio = "VELOUR_INVENTORY_UNIT_COST_RATIO"
	EnvInventoryScanInterval  = "VELOUR_INVENTORY_ALERT_SCAN_INTERVAL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
