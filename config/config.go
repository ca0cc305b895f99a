package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string `mapstructure:"server_host"`
	ServerPort string `mapstructure:"server_port"`

	// Database configuration
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_ssl_mode"`

	// Redis configuration (rate limiting)
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// External recipe provider
	MealDBBaseURL string `mapstructure:"mealdb_base_url"`

	// Vision model used for dish detection
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIAPIURL string `mapstructure:"openai_api_url"`
	VisionModel  string `mapstructure:"vision_model"`

	// Upload storage
	S3Bucket  string `mapstructure:"s3_bucket_name"`
	AWSRegion string `mapstructure:"aws_region"`

	// Rate limiting for image discovery
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// LoadConfig reads configuration from environment variables with defaults
// suitable for local development. Every key maps to its upper-cased env var,
// e.g. db_host -> DB_HOST.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "food_recipes")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("mealdb_base_url", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("vision_model", "gpt-4o-mini")
	v.SetDefault("s3_bucket_name", "food-recipes-uploads")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("rate_limit_requests", 10)
	v.SetDefault("rate_limit_window", time.Minute)
	v.SetDefault("log_level", "info")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
