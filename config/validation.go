package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable in the current
// environment. Development is permissive; production requires every
// sensitive value to be set explicitly.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required (use \"mock\" for the in-memory backend)")
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if IsProduction() {
		if cfg.JWTSecret == defaultJWTSecret {
			errs = append(errs, "JWT_SECRET must not use the development fallback in production")
		}
		if cfg.DatabaseURL == MockDatabaseURL {
			errs = append(errs, "DATABASE_URL must not be \"mock\" in production")
		}
		if cfg.PaymentAPIKey == "" {
			errs = append(errs, "PAYMENT_API_KEY is required in production")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
