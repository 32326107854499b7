package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
)

// ShipmentRepositoryGORM implements shipment persistence using GORM
type ShipmentRepositoryGORM struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new GORM-based shipment repository
func NewShipmentRepository(db *gorm.DB) *ShipmentRepositoryGORM {
	return &ShipmentRepositoryGORM{db: db}
}

// Save creates or updates a shipment, keyed by its external code
func (r *ShipmentRepositoryGORM) Save(ctx context.Context, s *shipment.Shipment) error {
	var existing ShipmentModel
	err := r.db.WithContext(ctx).Where("code = ?", s.Code()).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up shipment %s: %w", s.Code(), err)
	}

	model := shipmentToModel(s)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model.ID = uuid.New().String()
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return fmt.Errorf("failed to create shipment %s: %w", s.Code(), err)
		}
		return nil
	}

	model.ID = existing.ID
	model.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update shipment %s: %w", s.Code(), err)
	}
	return nil
}

// FindByCode retrieves a shipment by its external code
func (r *ShipmentRepositoryGORM) FindByCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	var model ShipmentModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewShipmentNotFoundError(code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment %s: %w", code, err)
	}
	return modelToShipment(&model), nil
}

// List returns up to limit shipments ordered by priority desc, ship date asc
func (r *ShipmentRepositoryGORM) List(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	var models []ShipmentModel
	err := r.db.WithContext(ctx).
		Order("is_priority DESC, ship_date ASC, code ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return modelsToShipments(models), nil
}

// ListUnassigned returns shipments without an active voyage assignment.
// The ordering matches List: batch runs consume capacity in this order.
func (r *ShipmentRepositoryGORM) ListUnassigned(ctx context.Context, statuses []shipment.Status, limit int) ([]*shipment.Shipment, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var models []ShipmentModel
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN voyage_assignments ON voyage_assignments.shipment_id = shipments.id").
		Where("voyage_assignments.id IS NULL").
		Where("shipments.status IN ?", values).
		Order("shipments.is_priority DESC, shipments.ship_date ASC, shipments.code ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned shipments: %w", err)
	}
	return modelsToShipments(models), nil
}

// Delete removes a shipment and its active assignment. Tracking events are
// left in place.
func (r *ShipmentRepositoryGORM) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model ShipmentModel
		err := tx.Where("code = ?", code).First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewShipmentNotFoundError(code)
		}
		if err != nil {
			return fmt.Errorf("failed to find shipment %s: %w", code, err)
		}
		if err := tx.Where("shipment_id = ?", model.ID).Delete(&VoyageAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignment for shipment %s: %w", code, err)
		}
		if err := tx.Delete(&model).Error; err != nil {
			return fmt.Errorf("failed to delete shipment %s: %w", code, err)
		}
		return nil
	})
}

// RecordEvent appends a tracking event to a shipment's history
func (r *ShipmentRepositoryGORM) RecordEvent(ctx context.Context, code string, event *shipment.TrackingEvent) error {
	var model ShipmentModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewShipmentNotFoundError(code)
	}
	if err != nil {
		return fmt.Errorf("failed to find shipment %s: %w", code, err)
	}

	record := &TrackingEventModel{
		ID:         uuid.New().String(),
		ShipmentID: model.ID,
		EventType:  event.EventType(),
		Location:   event.Location(),
		Notes:      event.Notes(),
		OccurredAt: event.OccurredAt(),
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record event for shipment %s: %w", code, err)
	}
	return nil
}

// ListEvents returns a shipment's tracking history, most recent first
func (r *ShipmentRepositoryGORM) ListEvents(ctx context.Context, code string) ([]*shipment.TrackingEvent, error) {
	var model ShipmentModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewShipmentNotFoundError(code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment %s: %w", code, err)
	}

	var records []TrackingEventModel
	err = r.db.WithContext(ctx).
		Where("shipment_id = ?", model.ID).
		Order("occurred_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events for shipment %s: %w", code, err)
	}

	events := make([]*shipment.TrackingEvent, 0, len(records))
	for _, record := range records {
		events = append(events, shipment.ReconstructTrackingEvent(
			record.EventType, record.Location, record.Notes, record.OccurredAt))
	}
	return events, nil
}

func shipmentToModel(s *shipment.Shipment) *ShipmentModel {
	return &ShipmentModel{
		Code:        s.Code(),
		Status:      string(s.Status()),
		IsPriority:  s.IsPriority(),
		Origin:      s.Origin(),
		Destination: s.Destination(),
		ShipDate:    s.ShipDate(),
		TransitDays: s.TransitDays(),
		WeightTons:  s.WeightTons(),
		VolumeM3:    s.VolumeM3(),
	}
}

func modelToShipment(m *ShipmentModel) *shipment.Shipment {
	return shipment.Reconstruct(
		m.Code,
		shipment.Status(m.Status),
		m.IsPriority,
		m.Origin,
		m.Destination,
		m.ShipDate,
		m.TransitDays,
		m.WeightTons,
		m.VolumeM3,
	)
}

func modelsToShipments(models []ShipmentModel) []*shipment.Shipment {
	shipments := make([]*shipment.Shipment, 0, len(models))
	for i := range models {
		shipments = append(shipments, modelToShipment(&models[i]))
	}
	return shipments
}
