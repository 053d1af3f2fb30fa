package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MockDatabaseURL is the sentinel DATABASE_URL value that selects the
// in-memory backend instead of PostgreSQL.
const MockDatabaseURL = "mock"

// defaultJWTSecret is the development-only fallback signing secret.
// Production configuration validation rejects a missing JWT_SECRET.
const defaultJWTSecret = "secret123456789"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. "mock" selects the in-memory backend.
	DatabaseURL string

	// Redis configuration (optional; disables caching and rate
	// limiting when unset)
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// AMQP configuration (optional; disables event publishing when unset)
	AMQPURL string

	// Payment provider configuration
	PaymentAPIURL string
	PaymentAPIKey string

	// S3 configuration
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance from environment variables,
// falling back to Docker secrets for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "5000"),
		DatabaseURL:   envOrSecret("DATABASE_URL", "database_url"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		JWTSecret:     envOrSecret("JWT_SECRET", "jwt_secret"),
		AMQPURL:       getEnv("AMQP_URL", ""),
		PaymentAPIURL: getEnv("PAYMENT_API_URL", "https://api.stripe.com"),
		PaymentAPIKey: envOrSecret("PAYMENT_API_KEY", "payment_api_key"),
		S3Bucket:      getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:     getEnv("AWS_REGION", ""),
	}

	if db := getEnv("REDIS_DB", ""); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	// The original deployment shipped with a hardcoded signing secret.
	// Keep it for development convenience only; validation rejects a
	// missing secret everywhere else.
	if cfg.JWTSecret == "" && IsDevelopment() {
		cfg.JWTSecret = defaultJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// MockMode reports whether the in-memory database backend is selected.
func (c *Config) MockMode() bool {
	return c.DatabaseURL == MockDatabaseURL
}

// getEnv reads an environment variable with a default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrSecret reads a value from the environment, falling back to a
// Docker secret of the given name.
func envOrSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
