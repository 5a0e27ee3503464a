package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/courtside/internal/sportsapi"
)

// InsecureDefaultSecret is used when SECRET_KEY is unset. Fine for local
// development, rejected in production.
const InsecureDefaultSecret = "dev-insecure-secret-change-me"

// EnvProduction is the APP_ENV value that enforces a real secret
const EnvProduction = "production"

type Config struct {
	// Sports API
	SportsAPIKey     string
	SportsAPIBaseURL string

	// Credential store
	DatabaseURL string

	// Sessions
	SecretKey       string
	SessionStore    string
	RedisURL        string
	SessionDuration time.Duration

	// HTTP
	HTTPPort int

	// Login throttling
	LoginRateLimitRPS   float64
	LoginRateLimitBurst int

	// Application settings
	Environment string
	LogLevel    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (not required in production)
	_ = godotenv.Load()

	config := &Config{
		SportsAPIKey:        getEnv("BALLDONTLIE_API_KEY", ""),
		SportsAPIBaseURL:    getEnv("SPORTS_API_BASE_URL", sportsapi.DefaultBaseURL),
		DatabaseURL:         getEnv("DATABASE_URL", "sqlite://courtside.db"),
		SecretKey:           getEnv("SECRET_KEY", InsecureDefaultSecret),
		SessionStore:        getEnv("SESSION_STORE", "memory"),
		RedisURL:            getEnv("REDIS_URL", ""),
		SessionDuration:     getEnvAsDuration("SESSION_DURATION", 24*time.Hour),
		HTTPPort:            getEnvAsInt("HTTP_PORT", 8080),
		LoginRateLimitRPS:   getEnvAsFloat("LOGIN_RATE_LIMIT_RPS", 10),
		LoginRateLimitBurst: getEnvAsInt("LOGIN_RATE_LIMIT_BURST", 20),
		Environment:         getEnv("APP_ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}

	if c.IsProduction() && c.IsUnsafeSecret() {
		return errors.New("SECRET_KEY must be set to a real secret in production")
	}

	switch c.SessionStore {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be 'memory' or 'redis', got %q", c.SessionStore)
	}

	if c.SessionDuration <= 0 {
		return errors.New("SESSION_DURATION must be positive")
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}

	if c.LoginRateLimitRPS <= 0 || c.LoginRateLimitBurst <= 0 {
		return errors.New("LOGIN_RATE_LIMIT_RPS and LOGIN_RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// IsProduction reports whether APP_ENV names the production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// IsUnsafeSecret reports whether the session secret is the built-in placeholder
func (c *Config) IsUnsafeSecret() bool {
	return c.SecretKey == InsecureDefaultSecret
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
