package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Indexing API configuration
	Moralis MoralisConfig

	// Connected wallet configuration
	Wallet WalletConfig

	// Redis configuration
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// Terminal console configuration
	Console ConsoleConfig

	// Logging configuration
	Log LogConfig
}

// MoralisConfig holds indexing API settings
type MoralisConfig struct {
	APIKey         string        `envconfig:"MORALIS_API_KEY" validate:"required"`
	BaseURL        string        `envconfig:"MORALIS_BASE_URL" default:"https://deep-index.moralis.io/api/v2.2" validate:"required,url"`
	RequestTimeout time.Duration `envconfig:"MORALIS_REQUEST_TIMEOUT" default:"30s" validate:"min=0"`
}

// WalletConfig holds connected wallet settings
type WalletConfig struct {
	// ProjectID is handed to the browser wallet-connection widget, never used server side
	ProjectID      string        `envconfig:"WALLETCONNECT_PROJECT_ID" default:""`
	RPCURL         string        `envconfig:"WALLET_RPC_URL" default:"" validate:"omitempty,url"`
	RequestTimeout time.Duration `envconfig:"WALLET_REQUEST_TIMEOUT" default:"5s" validate:"gt=0"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379" validate:"min=1,max=65535"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0" validate:"min=0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8081" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"100" validate:"min=1"`
	SessionTTL      time.Duration `envconfig:"API_SESSION_TTL" default:"30m" validate:"gt=0"`
	SessionStore    string        `envconfig:"SESSION_STORE" default:"memory" validate:"oneof=memory redis"`
}

// ConsoleConfig holds the console timings
type ConsoleConfig struct {
	Debounce       time.Duration `envconfig:"CONSOLE_DEBOUNCE" default:"300ms" validate:"gt=0"`
	TypingInterval time.Duration `envconfig:"CONSOLE_TYPING_INTERVAL" default:"2ms" validate:"min=0"`
	TitleInterval  time.Duration `envconfig:"CONSOLE_TITLE_INTERVAL" default:"100ms" validate:"min=0"`
	Preload        time.Duration `envconfig:"CONSOLE_PRELOAD" default:"1500ms" validate:"min=0"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json console"`
}

// Load loads configuration from a .env file (if present) and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Addr returns the listen address of the API server
func (c *APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
