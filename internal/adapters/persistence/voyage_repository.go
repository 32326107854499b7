package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// VoyageRepositoryGORM implements voyage persistence using GORM
type VoyageRepositoryGORM struct {
	db *gorm.DB
}

// NewVoyageRepository creates a new GORM-based voyage repository
func NewVoyageRepository(db *gorm.DB) *VoyageRepositoryGORM {
	return &VoyageRepositoryGORM{db: db}
}

// Save creates or updates a voyage, keyed by its external code
func (r *VoyageRepositoryGORM) Save(ctx context.Context, v *voyage.Voyage) error {
	var existing VoyageModel
	err := r.db.WithContext(ctx).Where("code = ?", v.Code()).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up voyage %s: %w", v.Code(), err)
	}

	model := voyageToModel(v)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		model.ID = uuid.New().String()
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return fmt.Errorf("failed to create voyage %s: %w", v.Code(), err)
		}
		return nil
	}

	model.ID = existing.ID
	model.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update voyage %s: %w", v.Code(), err)
	}
	return nil
}

// FindByCode retrieves a voyage by its external code
func (r *VoyageRepositoryGORM) FindByCode(ctx context.Context, code string) (*voyage.Voyage, error) {
	var model VoyageModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewVoyageNotFoundError(code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find voyage %s: %w", code, err)
	}
	return modelToVoyage(&model), nil
}

// List returns up to limit voyages ordered by departure time ascending
func (r *VoyageRepositoryGORM) List(ctx context.Context, limit int) ([]*voyage.Voyage, error) {
	var models []VoyageModel
	err := r.db.WithContext(ctx).
		Order("depart_at ASC, code ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}

	voyages := make([]*voyage.Voyage, 0, len(models))
	for i := range models {
		voyages = append(voyages, modelToVoyage(&models[i]))
	}
	return voyages, nil
}

// Delete removes a voyage and its assignments
func (r *VoyageRepositoryGORM) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model VoyageModel
		err := tx.Where("code = ?", code).First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewVoyageNotFoundError(code)
		}
		if err != nil {
			return fmt.Errorf("failed to find voyage %s: %w", code, err)
		}
		if err := tx.Where("voyage_id = ?", model.ID).Delete(&VoyageAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignments for voyage %s: %w", code, err)
		}
		if err := tx.Delete(&model).Error; err != nil {
			return fmt.Errorf("failed to delete voyage %s: %w", code, err)
		}
		return nil
	})
}

func voyageToModel(v *voyage.Voyage) *VoyageModel {
	return &VoyageModel{
		Code:        v.Code(),
		VesselName:  v.VesselName(),
		Origin:      v.Origin(),
		Destination: v.Destination(),
		DepartAt:    v.DepartAt(),
		ArriveBy:    v.ArriveBy(),
		WeightCapT:  v.WeightCapT(),
		VolumeCapM3: v.VolumeCapM3(),
	}
}

func modelToVoyage(m *VoyageModel) *voyage.Voyage {
	return voyage.Reconstruct(
		m.Code,
		m.VesselName,
		m.Origin,
		m.Destination,
		m.DepartAt,
		m.ArriveBy,
		m.WeightCapT,
		m.VolumeCapM3,
	)
}
