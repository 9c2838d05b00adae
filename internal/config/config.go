package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database      DatabaseConfig
	JWT           JWTConfig
	App           AppConfig
	Justification JustificationConfig
	Recompute     RecomputeConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds API token configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	APIKeyHash       string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// JustificationConfig holds the justification oracle endpoint settings
type JustificationConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RecomputeConfig holds batch recompute settings
type RecomputeConfig struct {
	Workers int
}

func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "America/Lima"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
		APIKeyHash:       getEnv("API_KEY_HASH", ""),
	}

	oracleTimeout, err := time.ParseDuration(getEnv("JUSTIFICATION_API_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JUSTIFICATION_API_TIMEOUT: %w", err)
	}

	config.Justification = JustificationConfig{
		BaseURL: getEnv("JUSTIFICATION_API_URL", ""),
		Timeout: oracleTimeout,
	}

	workers, err := strconv.Atoi(getEnv("RECOMPUTE_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMPUTE_WORKERS: %w", err)
	}
	config.Recompute = RecomputeConfig{Workers: workers}

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
	if c.JWT.APIKeyHash == "" {
		return fmt.Errorf("API_KEY_HASH is required")
	}
	if c.Recompute.Workers < 1 {
		return fmt.Errorf("RECOMPUTE_WORKERS must be at least 1")
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
