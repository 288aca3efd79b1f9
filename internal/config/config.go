package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	Company      CompanyConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
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
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret               string
	AccessTokenTTLMinutes   int
	PasswordResetTTLMinutes int
	BcryptCost              int
}

// NotificationConfig holds notification endpoints and the Redis stream events are appended to.
type NotificationConfig struct {
	EmailFrom    string
	WebhookURL   string
	Stream       string
	StreamMaxLen int64
	QueueSize    int
}

// CompanyConfig carries organisation-wide settings.
type CompanyConfig struct {
	Name     string
	Currency string
	Timezone string
	Location *time.Location
}

// Load reads configuration from the environment, after merging an optional .env file.
// Malformed numeric or boolean values fall back to their defaults; a malformed REDIS_DB
// or COMPANY_TIMEZONE aborts startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redis, err := loadRedis()
	if err != nil {
		return nil, err
	}
	company, err := loadCompany()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App:          loadApp(),
		Postgres:     loadPostgres(),
		Redis:        redis,
		Logger:       LoggerConfig{Level: getEnv("LOG_LEVEL", "info")},
		Auth:         loadAuth(),
		Notification: loadNotification(),
		Company:      company,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp() AppConfig {
	return AppConfig{
		Name:                  getEnv("APP_NAME", "employment-service"),
		Env:                   getEnv("APP_ENV", "development"),
		Host:                  getEnv("APP_HOST", "0.0.0.0"),
		Port:                  getEnv("APP_PORT", "8080"),
		Version:               getEnv("APP_VERSION", "dev"),
		RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		CORSAllowOrigins:      getEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

func loadPostgres() PostgresConfig {
	return PostgresConfig{
		DSN:            os.Getenv("POSTGRES_DSN"),
		MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
		MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
		RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
		ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
		ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
	}
}

func loadRedis() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func loadAuth() AuthConfig {
	return AuthConfig{
		JWTSecret:               getEnv("AUTH_JWT_SECRET", devJWTSecret),
		AccessTokenTTLMinutes:   getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 30),
		BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
	}
}

func loadNotification() NotificationConfig {
	return NotificationConfig{
		EmailFrom:    getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
		WebhookURL:   os.Getenv("NOTIFY_WEBHOOK_URL"),
		Stream:       getEnv("NOTIFY_STREAM", "ems:notifications"),
		StreamMaxLen: int64(getEnvAsInt("NOTIFY_STREAM_MAXLEN", 1000)),
		QueueSize:    getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
	}
}

func loadCompany() (CompanyConfig, error) {
	tz := getEnv("COMPANY_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return CompanyConfig{}, fmt.Errorf("invalid COMPANY_TIMEZONE: %w", err)
	}
	return CompanyConfig{
		Name:     getEnv("COMPANY_NAME", "Acme Corp"),
		Currency: getEnv("COMPANY_CURRENCY", "USD"),
		Timezone: tz,
		Location: loc,
	}, nil
}

const devJWTSecret = "dev-secret"

// validate rejects settings that are only acceptable outside production.
func (c *Config) validate() error {
	if !c.App.IsProduction() {
		return nil
	}
	if c.Auth.JWTSecret == devJWTSecret {
		return errors.New("AUTH_JWT_SECRET must be set in production")
	}
	if c.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN must be set in production")
	}
	return nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production") || strings.EqualFold(a.Env, "prod")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return net.JoinHostPort(a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}
