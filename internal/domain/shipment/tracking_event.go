package shipment

import (
	"strings"
	"time"

	"github.com/cargoplan/cargoplan/internal/domain/shared"
)

// TrackingEvent is an append-only scan/milestone record for a shipment.
// Events are never mutated after intake; deleting a shipment may orphan
// its events, which is acceptable in this domain.
type TrackingEvent struct {
	eventType  string
	location   string
	notes      string
	occurredAt time.Time
}

// NewTrackingEvent creates a tracking event from intake data
func NewTrackingEvent(eventType, location, notes string, occurredAt time.Time) (*TrackingEvent, error) {
	if strings.TrimSpace(eventType) == "" {
		return nil, shared.NewValidationError("eventType", "must not be empty")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return &TrackingEvent{
		eventType:  strings.TrimSpace(eventType),
		location:   strings.TrimSpace(location),
		notes:      notes,
		occurredAt: occurredAt,
	}, nil
}

// ReconstructTrackingEvent rebuilds an event from persistence data
func ReconstructTrackingEvent(eventType, location, notes string, occurredAt time.Time) *TrackingEvent {
	return &TrackingEvent{
		eventType:  eventType,
		location:   location,
		notes:      notes,
		occurredAt: occurredAt,
	}
}

func (e *TrackingEvent) EventType() string     { return e.eventType }
func (e *TrackingEvent) Location() string      { return e.location }
func (e *TrackingEvent) Notes() string         { return e.notes }
func (e *TrackingEvent) OccurredAt() time.Time { return e.occurredAt }
