package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"botboard/pkg/errors"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Auth          AuthConfig
	MarketData    MarketDataConfig
	Telegram      TelegramConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"botboard"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type HTTPConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"8080"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	Database string `envconfig:"POSTGRES_DB" required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"25"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" required:"true"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	TokenDuration time.Duration `envconfig:"JWT_TOKEN_DURATION" default:"720h"`

	// Login attempt throttling per client address
	LoginRatePerMinute int `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginRateBurst     int `envconfig:"LOGIN_RATE_BURST" default:"5"`
}

type MarketDataConfig struct {
	// Provider selects the quote source: "simulated" (default) or "binance"
	Provider string `envconfig:"MARKET_DATA_PROVIDER" default:"simulated"`

	// Binance public API needs no credentials for 24h ticker stats,
	// but keys can be supplied to raise rate limits
	BinanceAPIKey string `envconfig:"BINANCE_API_KEY"`
	BinanceSecret string `envconfig:"BINANCE_SECRET"`

	// SimulatedDelay is the artificial latency of the simulated provider
	SimulatedDelay time.Duration `envconfig:"MARKET_DATA_SIMULATED_DELAY" default:"1s"`

	// QuoteCacheTTL controls how long quotes are served from Redis
	QuoteCacheTTL time.Duration `envconfig:"MARKET_DATA_CACHE_TTL" default:"30s"`
}

type TelegramConfig struct {
	// Ops notifications are disabled when BotToken is empty
	BotToken    string `envconfig:"TELEGRAM_BOT_TOKEN"`
	AdminChatID int64  `envconfig:"TELEGRAM_ADMIN_CHAT_ID"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
