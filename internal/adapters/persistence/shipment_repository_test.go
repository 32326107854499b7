package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoplan/cargoplan/internal/adapters/persistence"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/test/helpers"
)

func f64(v float64) *float64 { return &v }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func mkShipment(t *testing.T, code string, priority bool, shipDate string) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(code, "Mumbai", "Chennai",
		date(shipDate), 5, priority, f64(10), f64(60))
	require.NoError(t, err)
	return s
}

func TestShipmentRepository_SaveAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)

	s, err := shipment.NewShipment("SHP-001", "Mumbai", "Chennai",
		date("2025-08-09"), 5, true, f64(12.5), nil)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), s))

	found, err := repo.FindByCode(context.Background(), "SHP-001")
	require.NoError(t, err)
	assert.Equal(t, "SHP-001", found.Code())
	assert.Equal(t, shipment.StatusCreated, found.Status())
	assert.True(t, found.IsPriority())
	assert.Equal(t, "Mumbai", found.Origin())
	assert.Equal(t, "Chennai", found.Destination())
	require.NotNil(t, found.WeightTons())
	assert.Equal(t, 12.5, *found.WeightTons())
	assert.Nil(t, found.VolumeM3())
}

func TestShipmentRepository_SaveIsUpsertByCode(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)

	s := mkShipment(t, "SHP-001", false, "2025-08-09")
	require.NoError(t, repo.Save(context.Background(), s))

	require.NoError(t, s.UpdateStatus(shipment.StatusInTransit))
	require.NoError(t, repo.Save(context.Background(), s))

	all, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, shipment.StatusInTransit, all[0].Status())
}

func TestShipmentRepository_FindMissingIsNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)

	_, err := repo.FindByCode(context.Background(), "SHP-404")
	require.Error(t, err)
	var notFound *shared.ShipmentNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestShipmentRepository_ListOrdersPriorityThenShipDate(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-LATE", false, "2025-08-20")))
	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-EARLY", false, "2025-08-09")))
	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-PRIO", true, "2025-08-25")))

	all, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "SHP-PRIO", all[0].Code())
	assert.Equal(t, "SHP-EARLY", all[1].Code())
	assert.Equal(t, "SHP-LATE", all[2].Code())
}

func TestShipmentRepository_ListUnassignedExcludesAssigned(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)
	assignments := persistence.NewAssignmentRepository(db, shared.NewMockClock(date("2025-08-01")))
	voyages := persistence.NewVoyageRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-001", false, "2025-08-09")))
	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-002", false, "2025-08-10")))
	require.NoError(t, voyages.Save(ctx, mkVoyage(t, "VOY-001", "2025-08-10", "2025-08-16")))

	require.NoError(t, assignments.Move(ctx, "SHP-001", "VOY-001"))

	pool, err := repo.ListUnassigned(ctx, shipment.AssignableStatuses, 10)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "SHP-002", pool[0].Code())
}

func TestShipmentRepository_ListUnassignedFiltersStatus(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)
	ctx := context.Background()

	delivered := mkShipment(t, "SHP-DONE", false, "2025-08-09")
	require.NoError(t, delivered.UpdateStatus(shipment.StatusInTransit))
	require.NoError(t, delivered.UpdateStatus(shipment.StatusDelivered))
	require.NoError(t, repo.Save(ctx, delivered))
	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-NEW", false, "2025-08-10")))

	pool, err := repo.ListUnassigned(ctx, shipment.AssignableStatuses, 10)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "SHP-NEW", pool[0].Code())
}

func TestShipmentRepository_TrackingEvents(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-001", false, "2025-08-09")))

	first, err := shipment.NewTrackingEvent("PICKED_UP", "Mumbai ICD", "", date("2025-08-09"))
	require.NoError(t, err)
	second, err := shipment.NewTrackingEvent("DEPARTED", "Mumbai Port", "gate out", date("2025-08-10"))
	require.NoError(t, err)

	require.NoError(t, repo.RecordEvent(ctx, "SHP-001", first))
	require.NoError(t, repo.RecordEvent(ctx, "SHP-001", second))

	events, err := repo.ListEvents(ctx, "SHP-001")
	require.NoError(t, err)
	require.Len(t, events, 2)
	// most recent first
	assert.Equal(t, "DEPARTED", events[0].EventType())
	assert.Equal(t, "PICKED_UP", events[1].EventType())
}

func TestShipmentRepository_DeleteRemovesAssignment(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewShipmentRepository(db)
	voyages := persistence.NewVoyageRepository(db)
	assignments := persistence.NewAssignmentRepository(db, shared.NewMockClock(date("2025-08-01")))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mkShipment(t, "SHP-001", false, "2025-08-09")))
	require.NoError(t, voyages.Save(ctx, mkVoyage(t, "VOY-001", "2025-08-10", "2025-08-16")))
	require.NoError(t, assignments.Move(ctx, "SHP-001", "VOY-001"))

	require.NoError(t, repo.Delete(ctx, "SHP-001"))

	_, err := repo.FindByCode(ctx, "SHP-001")
	require.Error(t, err)
	manifest, err := assignments.ListForVoyage(ctx, "VOY-001")
	require.NoError(t, err)
	assert.Empty(t, manifest)
}
