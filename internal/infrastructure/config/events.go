package config

// EventsConfig holds assignment event publishing configuration
type EventsConfig struct {
	// Enabled controls whether committed assignment changes are published.
	// Disabled swaps in a no-op publisher.
	Enabled bool `mapstructure:"enabled"`

	// Kafka broker addresses
	Brokers []string `mapstructure:"brokers"`

	// Topic for assignment change events
	Topic string `mapstructure:"topic"`
}
