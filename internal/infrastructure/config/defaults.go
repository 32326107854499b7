package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "cargoplan"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "cargoplan"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Metrics.Path == "" {
		cfg.Server.Metrics.Path = "/metrics"
	}

	// Assignment defaults
	if cfg.Assignment.ScoringMode == "" {
		cfg.Assignment.ScoringMode = "spread-load"
	}
	if cfg.Assignment.DepartSlack == 0 {
		cfg.Assignment.DepartSlack = 1 * time.Hour
	}
	if cfg.Assignment.ShipmentLimit == 0 {
		cfg.Assignment.ShipmentLimit = 500
	}
	if cfg.Assignment.VoyageLimit == 0 {
		cfg.Assignment.VoyageLimit = 200
	}

	// Advisor defaults
	if cfg.Advisor.Timeout == 0 {
		cfg.Advisor.Timeout = 30 * time.Second
	}
	if cfg.Advisor.RateLimit.Requests == 0 {
		cfg.Advisor.RateLimit.Requests = 2
	}
	if cfg.Advisor.RateLimit.Burst == 0 {
		cfg.Advisor.RateLimit.Burst = 5
	}
	if cfg.Advisor.Retry.MaxAttempts == 0 {
		cfg.Advisor.Retry.MaxAttempts = 3
	}
	if cfg.Advisor.Retry.BackoffBase == 0 {
		cfg.Advisor.Retry.BackoffBase = 1 * time.Second
	}

	// Events defaults
	if cfg.Events.Topic == "" {
		cfg.Events.Topic = "cargoplan.assignments"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
