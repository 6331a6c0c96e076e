package config

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQL    = "sql"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv             = "PACKFINDERZ_CART_APP_ENV"
	EnvPort               = "PACKFINDERZ_CART_APP_PORT"
	EnvLogLevel           = "PACKFINDERZ_CART_LOG_LEVEL"
	EnvStorageBackend     = "PACKFINDERZ_CART_STORAGE_BACKEND"
	EnvStorageKey         = "PACKFINDERZ_CART_STORAGE_KEY"
	EnvInsertOnAdd        = "PACKFINDERZ_CART_INSERT_ON_ADD"
	EnvRedisURL           = "PACKFINDERZ_CART_REDIS_URL"
	EnvRedisAddr          = "PACKFINDERZ_CART_REDIS_ADDR"
	EnvDBDriver           = "PACKFINDERZ_CART_DB_DRIVER"
	EnvDBDSN              = "PACKFINDERZ_CART_DB_DSN"
	EnvCurrencyCode       = "PACKFINDERZ_CART_CURRENCY_CODE"
	EnvCurrencySymbol     = "PACKFINDERZ_CART_CURRENCY_SYMBOL"
	EnvCurrencyDecimalSep = "PACKFINDERZ_CART_CURRENCY_DECIMAL_SEPARATOR"
	EnvCurrencyGroupSep   = "PACKFINDERZ_CART_CURRENCY_GROUP_SEPARATOR"
)
