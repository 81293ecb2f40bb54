package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Payment      PaymentConfig
	Stripe       StripeConfig
	Gemini       GeminiConfig
	Studio       StudioConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendSQL {
		if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
	}
	if err := cfg.Payment.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NOVA_APP_ENV" required:"true"`
	Port         string `envconfig:"NOVA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NOVA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"NOVA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"NOVA_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string `envconfig:"NOVA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where wishlists and order history are persisted.
type StorageConfig struct {
	Backend string `envconfig:"NOVA_STORAGE_BACKEND" default:"memory"`
}

func (s *StorageConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case StorageBackendMemory, StorageBackendRedis, StorageBackendSQL:
		return nil
	case "":
		s.Backend = StorageBackendMemory
		return nil
	}
	return fmt.Errorf("%s must be one of %s, %s, %s", EnvStorageBackend, StorageBackendMemory, StorageBackendRedis, StorageBackendSQL)
}

type DBConfig struct {
	DSN    string `envconfig:"NOVA_DB_DSN"`
	Driver string `envconfig:"NOVA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"NOVA_DB_HOST"`
	Port     int    `envconfig:"NOVA_DB_PORT" default:"5432"`
	User     string `envconfig:"NOVA_DB_USER"`
	Password string `envconfig:"NOVA_DB_PASSWORD"`
	Name     string `envconfig:"NOVA_DB_NAME"`
	SSLMode  string `envconfig:"NOVA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NOVA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"NOVA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"NOVA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NOVA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NOVA_REDIS_URL"`
	Address      string        `envconfig:"NOVA_REDIS_ADDR"`
	Password     string        `envconfig:"NOVA_REDIS_PASSWORD"`
	DB           int           `envconfig:"NOVA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NOVA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NOVA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NOVA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NOVA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NOVA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SessionConfig configures the signed shopper session tokens.
type SessionConfig struct {
	Secret string        `envconfig:"NOVA_SESSION_SECRET" required:"true"`
	Issuer string        `envconfig:"NOVA_SESSION_ISSUER" default:"nova"`
	TTL    time.Duration `envconfig:"NOVA_SESSION_TTL" default:"720h"`

	// IdleTTL bounds how long an unused session stays in memory.
	IdleTTL     time.Duration `envconfig:"NOVA_SESSION_IDLE_TTL" default:"30m"`
	MaxSessions int           `envconfig:"NOVA_SESSION_MAX_LIVE" default:"10000"`
}

type PaymentConfig struct {
	Provider    string        `envconfig:"NOVA_PAYMENT_PROVIDER" default:"simulated"`
	Latency     time.Duration `envconfig:"NOVA_PAYMENT_LATENCY" default:"2s"`
	SuccessRate float64       `envconfig:"NOVA_PAYMENT_SUCCESS_RATE" default:"0.95"`
	Currency    string        `envconfig:"NOVA_PAYMENT_CURRENCY" default:"usd"`
}

func (p *PaymentConfig) validate() error {
	p.Provider = strings.ToLower(strings.TrimSpace(p.Provider))
	switch p.Provider {
	case PaymentProviderSimulated, PaymentProviderStripe:
	case "":
		p.Provider = PaymentProviderSimulated
	default:
		return fmt.Errorf("%s must be %q or %q", EnvPaymentProvider, PaymentProviderSimulated, PaymentProviderStripe)
	}
	if p.SuccessRate < 0 || p.SuccessRate > 1 {
		return fmt.Errorf("%s must be between 0 and 1", EnvPaymentSuccessRate)
	}
	return nil
}

type StripeConfig struct {
	APIKey        string `envconfig:"NOVA_STRIPE_API_KEY"`
	Env           string `envconfig:"NOVA_STRIPE_ENV" default:"test"`
	PaymentMethod string `envconfig:"NOVA_STRIPE_PAYMENT_METHOD" default:"pm_card_visa"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type GeminiConfig struct {
	APIKey             string        `envconfig:"NOVA_GEMINI_API_KEY"`
	InsightModel       string        `envconfig:"NOVA_GEMINI_INSIGHT_MODEL" default:"gemini-3-flash-preview"`
	RecommendModel     string        `envconfig:"NOVA_GEMINI_RECOMMEND_MODEL" default:"gemini-3-pro-preview"`
	ImageModel         string        `envconfig:"NOVA_GEMINI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	HighResImageModel  string        `envconfig:"NOVA_GEMINI_HIGHRES_IMAGE_MODEL" default:"gemini-3-pro-image-preview"`
	InsightTimeout     time.Duration `envconfig:"NOVA_GEMINI_INSIGHT_TIMEOUT" default:"8s"`
	RecommendTimeout   time.Duration `envconfig:"NOVA_GEMINI_RECOMMEND_TIMEOUT" default:"15s"`
	ImageTimeout       time.Duration `envconfig:"NOVA_GEMINI_IMAGE_TIMEOUT" default:"90s"`
	BreakerMaxFailures uint32        `envconfig:"NOVA_GEMINI_BREAKER_MAX_FAILURES" default:"5"`
	BreakerCooldown    time.Duration `envconfig:"NOVA_GEMINI_BREAKER_COOLDOWN" default:"30s"`
}

// StudioConfig throttles image generation per session.
type StudioConfig struct {
	RateLimitWindow time.Duration `envconfig:"NOVA_STUDIO_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitCount  int           `envconfig:"NOVA_STUDIO_RATE_LIMIT_COUNT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NOVA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NOVA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DBDriverSQLite
		if db.DSN == "" {
			db.DSN = "file:nova.db?cache=shared"
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range componentDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
