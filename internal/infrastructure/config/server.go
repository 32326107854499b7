package config

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Host to bind the HTTP server
	Host string `mapstructure:"host"`

	// Port for the HTTP server
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`

	// Cron expression for the recurring batch auto-assign run.
	// Empty disables the scheduler.
	AutoAssignCron string `mapstructure:"auto_assign_cron"`

	// Metrics endpoint settings
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig holds metrics exposure configuration
type MetricsConfig struct {
	// Enabled controls whether the Prometheus endpoint is mounted
	Enabled bool `mapstructure:"enabled"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path"`
}
