package config

import "time"

// AssignmentConfig holds assignment engine tuning
type AssignmentConfig struct {
	// Scoring mode: spread-load, tight-pack, or priority-weighted
	ScoringMode string `mapstructure:"scoring_mode" validate:"required,oneof=spread-load tight-pack priority-weighted"`

	// Grace period by which a voyage may depart before a shipment's ready
	// date and still be considered feasible. Same-day cutoffs and timezone
	// skew make a zero-slack rule reject valid same-day sailings.
	DepartSlack time.Duration `mapstructure:"depart_slack" validate:"min=0,max=24h"`

	// Maximum unassigned shipments pulled into one batch run
	ShipmentLimit int `mapstructure:"shipment_limit" validate:"min=1,max=10000"`

	// Maximum voyages considered per assignment decision
	VoyageLimit int `mapstructure:"voyage_limit" validate:"min=1,max=10000"`
}
