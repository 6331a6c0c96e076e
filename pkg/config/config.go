package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	DB       DBConfig
	Currency CurrencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PACKFINDERZ_CART_APP_ENV" default:"dev"`
	Port         string `envconfig:"PACKFINDERZ_CART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PACKFINDERZ_CART_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PACKFINDERZ_CART_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PACKFINDERZ_CART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where cart snapshots are persisted.
type StorageConfig struct {
	Backend string `envconfig:"PACKFINDERZ_CART_STORAGE_BACKEND" default:"memory"`
	// Key is the single canonical key the cart snapshot lives under.
	Key         string        `envconfig:"PACKFINDERZ_CART_STORAGE_KEY" default:"products"`
	Timeout     time.Duration `envconfig:"PACKFINDERZ_CART_STORAGE_TIMEOUT" default:"3s"`
	InsertOnAdd bool          `envconfig:"PACKFINDERZ_CART_INSERT_ON_ADD" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PACKFINDERZ_CART_REDIS_URL"`
	Address      string        `envconfig:"PACKFINDERZ_CART_REDIS_ADDR"`
	Password     string        `envconfig:"PACKFINDERZ_CART_REDIS_PASSWORD"`
	DB           int           `envconfig:"PACKFINDERZ_CART_REDIS_DB" default:"0"`
	Namespace    string        `envconfig:"PACKFINDERZ_CART_REDIS_NAMESPACE" default:"pf"`
	PoolSize     int           `envconfig:"PACKFINDERZ_CART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PACKFINDERZ_CART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PACKFINDERZ_CART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PACKFINDERZ_CART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PACKFINDERZ_CART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	Driver      string `envconfig:"PACKFINDERZ_CART_DB_DRIVER" default:"sqlite"`
	DSN         string `envconfig:"PACKFINDERZ_CART_DB_DSN" default:"file:cart.db"`
	AutoMigrate bool   `envconfig:"PACKFINDERZ_CART_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"PACKFINDERZ_CART_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"PACKFINDERZ_CART_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"PACKFINDERZ_CART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PACKFINDERZ_CART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// CurrencyConfig drives how totals are rendered. Code wins over Locale when both are set.
type CurrencyConfig struct {
	Code             string `envconfig:"PACKFINDERZ_CART_CURRENCY_CODE"`
	Locale           string `envconfig:"PACKFINDERZ_CART_CURRENCY_LOCALE" default:"en-US"`
	Symbol           string `envconfig:"PACKFINDERZ_CART_CURRENCY_SYMBOL"`
	DecimalSeparator string `envconfig:"PACKFINDERZ_CART_CURRENCY_DECIMAL_SEPARATOR" default:"."`
	GroupSeparator   string `envconfig:"PACKFINDERZ_CART_CURRENCY_GROUP_SEPARATOR" default:","`
}

func (c *Config) validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case StorageBackendMemory:
	case StorageBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
		}
	case StorageBackendSQL:
		c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
		switch c.DB.Driver {
		case DBDriverPostgres, DBDriverSQLite:
		default:
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the sql backend", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, c.Storage.Backend)
	}

	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("%s must not be empty", EnvStorageKey)
	}
	if c.Currency.DecimalSeparator == "" {
		return fmt.Errorf("%s must not be empty", EnvCurrencyDecimalSep)
	}
	if c.Currency.DecimalSeparator == c.Currency.GroupSeparator {
		return fmt.Errorf("currency decimal and group separators must differ")
	}
	return nil
}
