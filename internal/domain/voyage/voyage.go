package voyage

import (
	"strings"
	"time"

	"github.com/cargoplan/cargoplan/internal/domain/shared"
)

// Voyage is the aggregate root for a scheduled sailing on a single lane.
//
// Capacity caps are pointers: nil means the dimension is unconstrained.
// Usage is never cached on the voyage itself; it is always recomputed from
// live assignments, which keeps the capacity ledger a derived view.
type Voyage struct {
	code        string
	vesselName  string
	origin      string
	destination string
	departAt    time.Time
	arriveBy    time.Time
	weightCapT  *float64
	volumeCapM3 *float64
}

// NewVoyage creates a voyage from planner input
func NewVoyage(
	code, vesselName string,
	origin, destination string,
	departAt, arriveBy time.Time,
	weightCapT, volumeCapM3 *float64,
) (*Voyage, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewValidationError("code", "must not be empty")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, shared.NewValidationError("origin", "must not be empty")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, shared.NewValidationError("destination", "must not be empty")
	}
	if !departAt.IsZero() && !arriveBy.IsZero() && arriveBy.Before(departAt) {
		return nil, shared.NewValidationError("arriveBy", "must not precede departAt")
	}
	if weightCapT != nil && *weightCapT < 0 {
		return nil, shared.NewValidationError("weightCapT", "must not be negative")
	}
	if volumeCapM3 != nil && *volumeCapM3 < 0 {
		return nil, shared.NewValidationError("volumeCapM3", "must not be negative")
	}

	return &Voyage{
		code:        strings.TrimSpace(code),
		vesselName:  strings.TrimSpace(vesselName),
		origin:      strings.TrimSpace(origin),
		destination: strings.TrimSpace(destination),
		departAt:    departAt,
		arriveBy:    arriveBy,
		weightCapT:  weightCapT,
		volumeCapM3: volumeCapM3,
	}, nil
}

// Reconstruct rebuilds a Voyage from persistence data without validation
func Reconstruct(
	code, vesselName string,
	origin, destination string,
	departAt, arriveBy time.Time,
	weightCapT, volumeCapM3 *float64,
) *Voyage {
	return &Voyage{
		code:        code,
		vesselName:  vesselName,
		origin:      origin,
		destination: destination,
		departAt:    departAt,
		arriveBy:    arriveBy,
		weightCapT:  weightCapT,
		volumeCapM3: volumeCapM3,
	}
}

func (v *Voyage) Code() string          { return v.code }
func (v *Voyage) VesselName() string    { return v.vesselName }
func (v *Voyage) Origin() string        { return v.origin }
func (v *Voyage) Destination() string   { return v.destination }
func (v *Voyage) DepartAt() time.Time   { return v.departAt }
func (v *Voyage) ArriveBy() time.Time   { return v.arriveBy }
func (v *Voyage) WeightCapT() *float64  { return v.weightCapT }
func (v *Voyage) VolumeCapM3() *float64 { return v.volumeCapM3 }

// HasWeightCap reports whether the weight dimension is constrained
func (v *Voyage) HasWeightCap() bool { return v.weightCapT != nil }

// HasVolumeCap reports whether the volume dimension is constrained
func (v *Voyage) HasVolumeCap() bool { return v.volumeCapM3 != nil }
