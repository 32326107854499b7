package config

import "time"

// AdvisorConfig holds text-generation collaborator client configuration
type AdvisorConfig struct {
	// Enabled controls whether the advisor is wired at all. Disabled means
	// every suggestion path uses its deterministic fallback.
	Enabled bool `mapstructure:"enabled"`

	// Base URL of the completion endpoint
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// API key for the completion endpoint
	APIKey string `mapstructure:"api_key"`

	// Model identifier sent with each request
	Model string `mapstructure:"model"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
