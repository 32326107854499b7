package persistence

import (
	"time"
)

// ShipmentModel represents the shipments table
type ShipmentModel struct {
	ID          string    `gorm:"column:id;primaryKey;not null"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Status      string    `gorm:"column:status;not null;default:'CREATED'"`
	IsPriority  bool      `gorm:"column:is_priority;not null;default:false"`
	Origin      string    `gorm:"column:origin;not null"`
	Destination string    `gorm:"column:destination;not null"`
	ShipDate    time.Time `gorm:"column:ship_date;not null"`
	TransitDays int       `gorm:"column:transit_days;not null;default:0"`
	WeightTons  *float64  `gorm:"column:weight_tons"`
	VolumeM3    *float64  `gorm:"column:volume_m3"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// TrackingEventModel represents the tracking_events table.
// Events are append-only; there is no update path.
type TrackingEventModel struct {
	ID         string    `gorm:"column:id;primaryKey;not null"`
	ShipmentID string    `gorm:"column:shipment_id;index;not null"`
	EventType  string    `gorm:"column:event_type;not null"`
	Location   string    `gorm:"column:location"`
	Notes      string    `gorm:"column:notes;type:text"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (TrackingEventModel) TableName() string {
	return "tracking_events"
}

// VoyageModel represents the voyages table
type VoyageModel struct {
	ID          string    `gorm:"column:id;primaryKey;not null"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	VesselName  string    `gorm:"column:vessel_name"`
	Origin      string    `gorm:"column:origin;not null"`
	Destination string    `gorm:"column:destination;not null"`
	DepartAt    time.Time `gorm:"column:depart_at"`
	ArriveBy    time.Time `gorm:"column:arrive_by"`
	WeightCapT  *float64  `gorm:"column:weight_cap_t"`
	VolumeCapM3 *float64  `gorm:"column:volume_cap_m3"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (VoyageModel) TableName() string {
	return "voyages"
}

// VoyageAssignmentModel represents the voyage_assignments table.
// The unique index on shipment_id is the single-active-assignment
// invariant: the database refuses a second concurrent assignment even if
// application-level serialization is bypassed.
type VoyageAssignmentModel struct {
	ID         string    `gorm:"column:id;primaryKey;not null"`
	VoyageID   string    `gorm:"column:voyage_id;index;not null"`
	ShipmentID string    `gorm:"column:shipment_id;uniqueIndex;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at;not null"`
}

func (VoyageAssignmentModel) TableName() string {
	return "voyage_assignments"
}
