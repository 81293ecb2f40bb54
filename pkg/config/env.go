package config

// EnvPrefix is handed to envconfig; every field carries an explicit key.
const EnvPrefix = "NOVA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQL    = "sql"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	PaymentProviderSimulated = "simulated"
	PaymentProviderStripe    = "stripe"
)

const (
	EnvAppEnv             = "NOVA_APP_ENV"
	EnvPort               = "NOVA_APP_PORT"
	EnvStorageBackend     = "NOVA_STORAGE_BACKEND"
	EnvDBDSN              = "NOVA_DB_DSN"
	EnvDBHost             = "NOVA_DB_HOST"
	EnvDBUser             = "NOVA_DB_USER"
	EnvDBName             = "NOVA_DB_NAME"
	EnvRedisURL           = "NOVA_REDIS_URL"
	EnvRedisAddr          = "NOVA_REDIS_ADDR"
	EnvSessionSecret      = "NOVA_SESSION_SECRET"
	EnvPaymentProvider    = "NOVA_PAYMENT_PROVIDER"
	EnvPaymentSuccessRate = "NOVA_PAYMENT_SUCCESS_RATE"
	EnvUseSQLite          = "NOVA_USE_SQLITE"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
