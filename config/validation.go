package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable. The OpenAI
// key is deliberately not required here: dish detection reports a
// configuration error at request time so the rest of the API can run
// without it.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "server_port", Message: "must not be empty"}
	}
	if cfg.DBHost == "" {
		return ValidationError{Field: "db_host", Message: "must not be empty"}
	}
	if cfg.DBName == "" {
		return ValidationError{Field: "db_name", Message: "must not be empty"}
	}
	if cfg.MealDBBaseURL == "" {
		return ValidationError{Field: "mealdb_base_url", Message: "must not be empty"}
	}
	if cfg.RateLimitRequests <= 0 {
		return ValidationError{Field: "rate_limit_requests", Message: "must be positive"}
	}
	if cfg.RateLimitWindow <= 0 {
		return ValidationError{Field: "rate_limit_window", Message: "must be positive"}
	}
	return nil
}
