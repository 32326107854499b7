package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
)

// AssignmentRepositoryGORM implements voyage assignment persistence using GORM
type AssignmentRepositoryGORM struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewAssignmentRepository creates a new GORM-based assignment repository
func NewAssignmentRepository(db *gorm.DB, clock shared.Clock) *AssignmentRepositoryGORM {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AssignmentRepositoryGORM{db: db, clock: clock}
}

// Move assigns the shipment to the voyage, replacing any existing assignment
// for the shipment. Delete and insert run in one transaction so the shipment
// is never observable with two assignments or caught half-moved.
func (r *AssignmentRepositoryGORM) Move(ctx context.Context, shipmentCode, voyageCode string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shipmentID, err := r.shipmentID(tx, shipmentCode)
		if err != nil {
			return err
		}
		voyageID, err := r.voyageID(tx, voyageCode)
		if err != nil {
			return err
		}

		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&VoyageAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear prior assignment for %s: %w", shipmentCode, err)
		}

		record := &VoyageAssignmentModel{
			ID:         uuid.New().String(),
			VoyageID:   voyageID,
			ShipmentID: shipmentID,
			AssignedAt: r.clock.Now(),
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to assign %s to %s: %w", shipmentCode, voyageCode, err)
		}
		return nil
	})
}

// Delete removes the assignment for the (voyage, shipment) pair
func (r *AssignmentRepositoryGORM) Delete(ctx context.Context, voyageCode, shipmentCode string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shipmentID, err := r.shipmentID(tx, shipmentCode)
		if err != nil {
			return err
		}
		voyageID, err := r.voyageID(tx, voyageCode)
		if err != nil {
			return err
		}

		result := tx.Where("voyage_id = ? AND shipment_id = ?", voyageID, shipmentID).
			Delete(&VoyageAssignmentModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete assignment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewAssignmentError(
				fmt.Sprintf("shipment %s is not assigned to voyage %s", shipmentCode, voyageCode),
				shipmentCode, voyageCode,
			)
		}
		return nil
	})
}

// ListForVoyage returns the current assignments on a voyage
func (r *AssignmentRepositoryGORM) ListForVoyage(ctx context.Context, voyageCode string) ([]*assignment.Assignment, error) {
	type row struct {
		ShipmentCode string
		VoyageCode   string
		AssignedAt   time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("voyage_assignments").
		Select("shipments.code AS shipment_code, voyages.code AS voyage_code, voyage_assignments.assigned_at").
		Joins("JOIN shipments ON shipments.id = voyage_assignments.shipment_id").
		Joins("JOIN voyages ON voyages.id = voyage_assignments.voyage_id").
		Where("voyages.code = ?", voyageCode).
		Order("voyage_assignments.assigned_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for voyage %s: %w", voyageCode, err)
	}

	assignments := make([]*assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, assignment.NewAssignment(row.ShipmentCode, row.VoyageCode, row.AssignedAt))
	}
	return assignments, nil
}

// ActiveVoyageCode returns the voyage a shipment is currently assigned to
func (r *AssignmentRepositoryGORM) ActiveVoyageCode(ctx context.Context, shipmentCode string) (string, bool, error) {
	var code string
	err := r.db.WithContext(ctx).
		Table("voyage_assignments").
		Select("voyages.code").
		Joins("JOIN shipments ON shipments.id = voyage_assignments.shipment_id").
		Joins("JOIN voyages ON voyages.id = voyage_assignments.voyage_id").
		Where("shipments.code = ?", shipmentCode).
		Limit(1).
		Scan(&code).Error
	if err != nil {
		return "", false, fmt.Errorf("failed to look up assignment for %s: %w", shipmentCode, err)
	}
	if code == "" {
		return "", false, nil
	}
	return code, true, nil
}

// ListLoads returns one Load per committed assignment across all voyages.
// Missing weight or volume counts as zero, matching the capacity math.
func (r *AssignmentRepositoryGORM) ListLoads(ctx context.Context) ([]assignment.Load, error) {
	var loads []assignment.Load
	err := r.db.WithContext(ctx).
		Table("voyage_assignments").
		Select("voyages.code AS voyage_code, COALESCE(shipments.weight_tons, 0) AS weight_tons, COALESCE(shipments.volume_m3, 0) AS volume_m3").
		Joins("JOIN shipments ON shipments.id = voyage_assignments.shipment_id").
		Joins("JOIN voyages ON voyages.id = voyage_assignments.voyage_id").
		Scan(&loads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list voyage loads: %w", err)
	}
	return loads, nil
}

func (r *AssignmentRepositoryGORM) shipmentID(tx *gorm.DB, code string) (string, error) {
	var model ShipmentModel
	err := tx.Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", shared.NewShipmentNotFoundError(code)
	}
	if err != nil {
		return "", fmt.Errorf("failed to find shipment %s: %w", code, err)
	}
	return model.ID, nil
}

func (r *AssignmentRepositoryGORM) voyageID(tx *gorm.DB, code string) (string, error) {
	var model VoyageModel
	err := tx.Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", shared.NewVoyageNotFoundError(code)
	}
	if err != nil {
		return "", fmt.Errorf("failed to find voyage %s: %w", code, err)
	}
	return model.ID, nil
}
