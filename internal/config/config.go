package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingMigrationDSN is returned when no migration connection string is set.
var ErrMissingMigrationDSN = errors.New("missing Postgres connection string: set POSTGRES_URL_NON_POOLING (or POSTGRES_PRISMA_URL/POSTGRES_URL)")

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Backend   BackendConfig
	Payment   PaymentConfig
	Chat      ChatConfig
	Analytics AnalyticsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	PublicURL             string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	RefreshTokenTTLHours  int
	BcryptCost            int
	CookieSecure          bool
	AdminFallbackPath     string
}

// BackendConfig holds the hosted backend connection pair.
type BackendConfig struct {
	URL     string
	AnonKey string
}

// PaymentConfig holds payment provider credentials.
type PaymentConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// ChatConfig configures the completion API client.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AnalyticsConfig configures consent-gated scripts.
type AnalyticsConfig struct {
	PlausibleDomain string
	PlausibleSrc    string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 0))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", false)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "companion-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			PublicURL:             getEnv("APP_PUBLIC_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            firstEnv("POSTGRES_URL_NON_POOLING", "POSTGRES_PRISMA_URL", "POSTGRES_URL", "POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("SUPABASE_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			RefreshTokenTTLHours:  getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_HOURS", 24*30),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			CookieSecure:          getEnvAsBool("AUTH_COOKIE_SECURE", false),
			AdminFallbackPath:     getEnv("ADMIN_FALLBACK_PATH", "/"),
		},
		Backend: BackendConfig{
			URL:     firstEnv("NEXT_PUBLIC_SUPABASE_URL", "SUPABASE_URL"),
			AnonKey: firstEnv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"),
		},
		Payment: PaymentConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			Currency:      getEnv("STRIPE_CURRENCY", "sek"),
		},
		Chat: ChatConfig{
			APIKey:  firstEnv("NOVITA_API_KEY", "NEXT_PUBLIC_NOVITA_API_KEY"),
			BaseURL: getEnv("NOVITA_BASE_URL", "https://api.novita.ai/v3/openai"),
			Model:   getEnv("CHAT_MODEL", "meta-llama/llama-3.1-8b-instruct"),
		},
		Analytics: AnalyticsConfig{
			PlausibleDomain: os.Getenv("NEXT_PUBLIC_PLAUSIBLE_DOMAIN"),
			PlausibleSrc:    getEnv("NEXT_PUBLIC_PLAUSIBLE_SRC", "https://plausible.io/js/script.js"),
		},
	}

	return cfg, nil
}

// MigrationDSN resolves the connection string used by the migration runner.
// Unlike the server, the runner refuses to start without one.
func MigrationDSN() (string, error) {
	dsn := firstEnv("POSTGRES_URL_NON_POOLING", "POSTGRES_PRISMA_URL", "POSTGRES_URL")
	if dsn == "" {
		return "", ErrMissingMigrationDSN
	}
	return dsn, nil
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

// Configured reports whether both halves of the backend connection pair are present.
func (b BackendConfig) Configured() bool {
	return b.URL != "" && b.AnonKey != ""
}

// Configured reports whether checkout can be offered.
func (p PaymentConfig) Configured() bool {
	return p.SecretKey != ""
}

// AccessTokenTTL returns the access token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime.
func (a AuthConfig) RefreshTokenTTL() time.Duration {
	if a.RefreshTokenTTLHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(a.RefreshTokenTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
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
