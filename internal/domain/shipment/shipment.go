package shipment

import (
	"strings"
	"time"

	"github.com/cargoplan/cargoplan/internal/domain/shared"
)

// Status represents the lifecycle state of a shipment
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusReturned  Status = "RETURNED"
)

// AssignableStatuses are the statuses eligible for voyage assignment.
// Delivered and returned shipments are excluded from every batch run.
var AssignableStatuses = []Status{StatusCreated, StatusInTransit}

// IsValid reports whether the status is one of the known lifecycle states
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusInTransit, StatusDelivered, StatusReturned:
		return true
	}
	return false
}

// IsTerminal reports whether the shipment has left the assignable pool
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned
}

// Shipment is the aggregate root for a tracked consignment.
//
// Weight and volume are pointers: nil means the value was never captured.
// The engine deliberately treats missing values as zero consumption so a
// shipment with unknown weight is never blocked from assignment; the
// trade-off is possible under-accounting on the voyage it lands on.
type Shipment struct {
	code        string
	status      Status
	isPriority  bool
	origin      string
	destination string
	shipDate    time.Time
	transitDays int
	weightTons  *float64
	volumeM3    *float64
}

// NewShipment creates a shipment from intake data
func NewShipment(
	code string,
	origin, destination string,
	shipDate time.Time,
	transitDays int,
	isPriority bool,
	weightTons, volumeM3 *float64,
) (*Shipment, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewValidationError("code", "must not be empty")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, shared.NewValidationError("origin", "must not be empty")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, shared.NewValidationError("destination", "must not be empty")
	}
	if transitDays < 0 {
		return nil, shared.NewValidationError("transitDays", "must not be negative")
	}
	if weightTons != nil && *weightTons < 0 {
		return nil, shared.NewValidationError("weightTons", "must not be negative")
	}
	if volumeM3 != nil && *volumeM3 < 0 {
		return nil, shared.NewValidationError("volumeM3", "must not be negative")
	}

	return &Shipment{
		code:        strings.TrimSpace(code),
		status:      StatusCreated,
		isPriority:  isPriority,
		origin:      strings.TrimSpace(origin),
		destination: strings.TrimSpace(destination),
		shipDate:    shipDate,
		transitDays: transitDays,
		weightTons:  weightTons,
		volumeM3:    volumeM3,
	}, nil
}

// Reconstruct rebuilds a Shipment from persistence data without validation
func Reconstruct(
	code string,
	status Status,
	isPriority bool,
	origin, destination string,
	shipDate time.Time,
	transitDays int,
	weightTons, volumeM3 *float64,
) *Shipment {
	return &Shipment{
		code:        code,
		status:      status,
		isPriority:  isPriority,
		origin:      origin,
		destination: destination,
		shipDate:    shipDate,
		transitDays: transitDays,
		weightTons:  weightTons,
		volumeM3:    volumeM3,
	}
}

func (s *Shipment) Code() string        { return s.code }
func (s *Shipment) Status() Status      { return s.status }
func (s *Shipment) IsPriority() bool    { return s.isPriority }
func (s *Shipment) Origin() string      { return s.origin }
func (s *Shipment) Destination() string { return s.destination }
func (s *Shipment) ShipDate() time.Time { return s.shipDate }
func (s *Shipment) TransitDays() int    { return s.transitDays }
func (s *Shipment) WeightTons() *float64 {
	return s.weightTons
}
func (s *Shipment) VolumeM3() *float64 {
	return s.volumeM3
}

// ChargeableWeight returns the weight the capacity math charges for this
// shipment. Missing weight counts as zero.
func (s *Shipment) ChargeableWeight() float64 {
	if s.weightTons == nil {
		return 0
	}
	return *s.weightTons
}

// ChargeableVolume returns the volume charged against voyage capacity.
// Missing volume counts as zero.
func (s *Shipment) ChargeableVolume() float64 {
	if s.volumeM3 == nil {
		return 0
	}
	return *s.volumeM3
}

// EstimatedDelivery returns ship date plus the planned transit duration
func (s *Shipment) EstimatedDelivery() time.Time {
	return s.shipDate.AddDate(0, 0, s.transitDays)
}

// IsAssignable reports whether the shipment is still eligible for assignment
func (s *Shipment) IsAssignable() bool {
	return !s.status.IsTerminal()
}

// UpdateStatus transitions the shipment to a new lifecycle state
func (s *Shipment) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "unknown status "+string(status))
	}
	s.status = status
	return nil
}

// MarkPriority flags or unflags the shipment for priority handling
func (s *Shipment) MarkPriority(priority bool) {
	s.isPriority = priority
}
