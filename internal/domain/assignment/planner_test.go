package assignment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
)

func TestPlanFFD_WeightDominantGreedyFill(t *testing.T) {
	// Two shipments of 10t and 6t against a 10t vessel: the 10t shipment
	// fills the vessel and the 6t one is skipped on weight.
	pool := []*shipment.Shipment{
		mkShipment(shipmentSpec{code: "SHP-A", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(6)}),
		mkShipment(shipmentSpec{code: "SHP-B", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(10)}),
	}

	plan := assignment.PlanFFD(pool, assignment.Vessel{Name: "MV Hypothesis", WeightCapT: f64(10)})

	assert.Equal(t, []string{"SHP-B"}, plan.Assigned)
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, "SHP-A", plan.Skipped[0].ShipmentCode)
	assert.Equal(t, assignment.ReasonWeight, plan.Skipped[0].Reason)
	assert.Equal(t, 100, plan.Utilization.WeightPct)
	assert.Equal(t, 0, plan.Utilization.VolumePct) // no volume cap declared
}

func TestPlanFFD_DominantDimensionIsTighterCap(t *testing.T) {
	// Volume cap (30) is tighter than weight cap (50): sort by volume.
	pool := []*shipment.Shipment{
		mkShipment(shipmentSpec{code: "SHP-SMALLVOL", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(40), volume: f64(5)}),
		mkShipment(shipmentSpec{code: "SHP-BIGVOL", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(1), volume: f64(25)}),
	}

	plan := assignment.PlanFFD(pool, assignment.Vessel{WeightCapT: f64(50), VolumeCapM3: f64(30)})

	// Big-volume shipment goes first under volume-dominant ordering; both fit.
	assert.Equal(t, []string{"SHP-BIGVOL", "SHP-SMALLVOL"}, plan.Assigned)
	assert.Equal(t, 100, plan.Utilization.VolumePct)
	assert.Equal(t, 82, plan.Utilization.WeightPct)
}

func TestPlanFFD_TieBreaksPriorityThenShipDate(t *testing.T) {
	pool := []*shipment.Shipment{
		mkShipment(shipmentSpec{code: "SHP-LATER", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-12", transitDays: 3, weight: f64(5)}),
		mkShipment(shipmentSpec{code: "SHP-PRIO", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-12", transitDays: 3, priority: true, weight: f64(5)}),
		mkShipment(shipmentSpec{code: "SHP-SOONER", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-10", transitDays: 3, weight: f64(5)}),
	}

	plan := assignment.PlanFFD(pool, assignment.Vessel{WeightCapT: f64(100)})

	assert.Equal(t, []string{"SHP-PRIO", "SHP-SOONER", "SHP-LATER"}, plan.Assigned)
}

func TestPlanFFD_SkipReasonNamesOverflowingDimension(t *testing.T) {
	pool := []*shipment.Shipment{
		mkShipment(shipmentSpec{code: "SHP-FIRST", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(8), volume: f64(8)}),
		mkShipment(shipmentSpec{code: "SHP-VOL", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(1), volume: f64(5)}),
		mkShipment(shipmentSpec{code: "SHP-BOTH", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(5), volume: f64(5)}),
	}

	plan := assignment.PlanFFD(pool, assignment.Vessel{WeightCapT: f64(10), VolumeCapM3: f64(10)})

	require.Len(t, plan.Assigned, 1)
	assert.Equal(t, "SHP-FIRST", plan.Assigned[0])
	reasons := map[string]string{}
	for _, sk := range plan.Skipped {
		reasons[sk.ShipmentCode] = sk.Reason
	}
	assert.Equal(t, assignment.ReasonVolume, reasons["SHP-VOL"])
	assert.Equal(t, assignment.ReasonWeightVolume, reasons["SHP-BOTH"])
}

func TestPlanFFD_UnlimitedVesselTakesEverything(t *testing.T) {
	pool := []*shipment.Shipment{
		mkShipment(shipmentSpec{code: "SHP-1", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3, weight: f64(1000), volume: f64(1000)}),
		mkShipment(shipmentSpec{code: "SHP-2", origin: "Mumbai", destination: "Chennai",
			shipDate: "2025-08-09", transitDays: 3}),
	}

	plan := assignment.PlanFFD(pool, assignment.Vessel{})

	assert.Len(t, plan.Assigned, 2)
	assert.Empty(t, plan.Skipped)
	assert.Equal(t, 0, plan.Utilization.WeightPct)
	assert.Equal(t, 0, plan.Utilization.VolumePct)
}

func TestPlanFFD_EmptyPool(t *testing.T) {
	plan := assignment.PlanFFD(nil, assignment.Vessel{WeightCapT: f64(10)})

	assert.Empty(t, plan.Assigned)
	assert.Empty(t, plan.Skipped)
	assert.Equal(t, 0, plan.Utilization.WeightPct)
}
