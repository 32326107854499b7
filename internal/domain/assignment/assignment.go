package assignment

import "time"

// Assignment relates exactly one shipment to exactly one voyage at a point
// in time. A shipment has at most one active assignment; replacing it is a
// move (delete prior, insert new) inside one transaction, never an append.
type Assignment struct {
	shipmentCode string
	voyageCode   string
	assignedAt   time.Time
}

// NewAssignment creates an assignment record
func NewAssignment(shipmentCode, voyageCode string, assignedAt time.Time) *Assignment {
	return &Assignment{
		shipmentCode: shipmentCode,
		voyageCode:   voyageCode,
		assignedAt:   assignedAt,
	}
}

func (a *Assignment) ShipmentCode() string  { return a.shipmentCode }
func (a *Assignment) VoyageCode() string    { return a.voyageCode }
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }
