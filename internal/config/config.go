package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	RSI      RSIConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. Tokens are minted by the
// platform identity service with the shared secret; this service only issues
// short-lived SSE tokens.
type JWTConfig struct {
	Secret        string
	SSEExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// StorageConfig holds file storage configuration for document attachments and
// generated review exports.
type StorageConfig struct {
	LocalDir string
	BaseURL  string
}

// RSIConfig configures the public RSI page fetcher used by handle and
// organization verification.
type RSIConfig struct {
	BaseURL      string
	FetchTimeout time.Duration
	UserAgent    string
}

func Load() (*Config, error) {
	// .env is optional; deployed environments provide real env vars.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "versecrew"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:        getEnv("JWT_SECRET_KEY", ""),
		SSEExpiration: getEnv("JWT_SSE_EXPIRATION_TIME", "5m"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		LocalDir: getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "/files"),
	}

	// RSI fetcher configuration
	rsiTimeout, err := time.ParseDuration(getEnv("RSI_FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RSI_FETCH_TIMEOUT: %w", err)
	}

	config.RSI = RSIConfig{
		BaseURL:      getEnv("RSI_BASE_URL", "https://robertsspaceindustries.com"),
		FetchTimeout: rsiTimeout,
		UserAgent:    getEnv("RSI_USER_AGENT", "VerseCrew-Verifier/1.0"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Storage.LocalDir == "" {
		return fmt.Errorf("STORAGE_LOCAL_DIR is required")
	}
	if c.RSI.BaseURL == "" {
		return fmt.Errorf("RSI_BASE_URL is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
