package shipment

import "context"

// Repository is the persistence port for shipments
type Repository interface {
	// Save creates or updates a shipment, keyed by its external code
	Save(ctx context.Context, s *Shipment) error

	// FindByCode retrieves a shipment by its external code.
	// Returns a ShipmentNotFoundError when no such shipment exists.
	FindByCode(ctx context.Context, code string) (*Shipment, error)

	// List returns up to limit shipments ordered by priority desc, ship date asc
	List(ctx context.Context, limit int) ([]*Shipment, error)

	// ListUnassigned returns shipments with no active voyage assignment whose
	// status is in statuses, ordered priority desc then ship date asc.
	// The ordering is load-bearing: batch runs consume capacity in this order.
	ListUnassigned(ctx context.Context, statuses []Status, limit int) ([]*Shipment, error)

	// Delete removes a shipment. Tracking events are left in place.
	Delete(ctx context.Context, code string) error

	// RecordEvent appends a tracking event to a shipment's history
	RecordEvent(ctx context.Context, code string, event *TrackingEvent) error

	// ListEvents returns a shipment's tracking history, most recent first
	ListEvents(ctx context.Context, code string) ([]*TrackingEvent, error)
}
