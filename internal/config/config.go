package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Cart      CartConfig
	Catalog   CatalogConfig
	Messaging MessagingConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. It is read once at startup and
// handed by value to the token manager and the gate.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	PasswordMinLength     int
	TokenHeader           string
	TokenPrefix           string
}

// CartQuantityCeiling bounds CART_MAX_QUANTITY. The request DTO enforces the
// same ceiling.
const CartQuantityCeiling = 1000

// CartConfig tunes cart mutations: the per-user lock and the largest quantity
// one request may add or remove.
type CartConfig struct {
	LockTTLSeconds int
	LockWaitMillis int
	MaxQuantity    int
}

// CatalogConfig tunes the item cache.
type CatalogConfig struct {
	CacheTTLSeconds int
}

// MessagingConfig holds the optional broker used for order events.
type MessagingConfig struct {
	RabbitMQURL string
	OrderQueue  string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 600),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			PasswordMinLength:     getEnvAsInt("AUTH_PASSWORD_MIN_LENGTH", 7),
			TokenHeader:           getEnv("AUTH_TOKEN_HEADER", "Authorization"),
			TokenPrefix:           getEnv("AUTH_TOKEN_PREFIX", "Bearer "),
		},
		Cart: CartConfig{
			LockTTLSeconds: getEnvAsInt("CART_LOCK_TTL_SECONDS", 5),
			LockWaitMillis: getEnvAsInt("CART_LOCK_WAIT_MILLIS", 2000),
			MaxQuantity:    getEnvAsInt("CART_MAX_QUANTITY", 100),
		},
		Catalog: CatalogConfig{
			CacheTTLSeconds: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300),
		},
		Messaging: MessagingConfig{
			RabbitMQURL: os.Getenv("RABBITMQ_URL"),
			OrderQueue:  getEnv("RABBITMQ_ORDER_QUEUE", "orders.submitted"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		return errors.New("AUTH_ACCESS_TOKEN_TTL_MINUTES must be positive")
	}
	if c.Auth.TokenHeader == "" {
		return errors.New("AUTH_TOKEN_HEADER must not be empty")
	}
	if c.Cart.MaxQuantity < 1 || c.Cart.MaxQuantity > CartQuantityCeiling {
		return fmt.Errorf("CART_MAX_QUANTITY must be between 1 and %d", CartQuantityCeiling)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the fixed token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// LockTTL returns how long a cart lock may be held before it expires on its own.
func (c CartConfig) LockTTL() time.Duration {
	if c.LockTTLSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// LockWait returns how long a request waits to acquire a cart lock.
func (c CartConfig) LockWait() time.Duration {
	if c.LockWaitMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.LockWaitMillis) * time.Millisecond
}

// CacheTTL returns the item cache lifetime; zero disables caching.
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
