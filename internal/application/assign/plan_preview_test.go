package assign_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
)

func TestPlanPreview_FiltersPoolBeforePacking(t *testing.T) {
	inLane := mkShipment("SHP-IN", false, f64(5), nil)
	wrongDest := shipment.Reconstruct("SHP-OUT", shipment.StatusCreated, false,
		"Mumbai", "Kochi", day("2025-08-09"), 3, f64(5), nil)
	tooEarly := shipment.Reconstruct("SHP-EARLY", shipment.StatusCreated, false,
		"Mumbai", "Chennai", day("2025-08-01"), 3, f64(5), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{inLane, wrongDest, tooEarly}}

	handler := assign.NewPlanPreviewHandler(shipments, nil, nil)
	result, err := handler.Execute(context.Background(), assign.PlanRequest{
		VesselName:  "MV Hypothesis",
		WeightCapT:  f64(100),
		Destination: "chennai",
		StartAfter:  day("2025-08-05"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"SHP-IN"}, result.Plan.Assigned)
}

func TestPlanPreview_NarrativeFromAdvisor(t *testing.T) {
	s := mkShipment("SHP-1", false, f64(5), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	advisor := &fakeAdvisor{
		narrativeFn: func(plan assign.PlanSummary) (string, error) {
			assert.Equal(t, "MV Hypothesis", plan.VesselName)
			assert.Equal(t, []string{"SHP-1"}, plan.Assigned)
			return "A light load with ample headroom.", nil
		},
	}

	handler := assign.NewPlanPreviewHandler(shipments, advisor, nil)
	result, err := handler.Execute(context.Background(), assign.PlanRequest{
		VesselName: "MV Hypothesis",
		WeightCapT: f64(100),
	})

	require.NoError(t, err)
	assert.Equal(t, "A light load with ample headroom.", result.Narrative)
}

func TestPlanPreview_NarrativeFallbackOnAdvisorError(t *testing.T) {
	s := mkShipment("SHP-1", false, f64(50), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	advisor := &fakeAdvisor{
		narrativeFn: func(plan assign.PlanSummary) (string, error) {
			return "", errors.New("request timeout")
		},
	}
	recorder := newFakeRecorder()

	handler := assign.NewPlanPreviewHandler(shipments, advisor, recorder)
	result, err := handler.Execute(context.Background(), assign.PlanRequest{WeightCapT: f64(100)})

	require.NoError(t, err)
	assert.Equal(t, 1, recorder.advisorFallbacks)
	assert.Contains(t, result.Narrative, "Planned 1 of 1 shipments")
	assert.Contains(t, result.Narrative, "weight 50%")
}

func TestPlanPreview_NothingPersisted(t *testing.T) {
	s := mkShipment("SHP-1", false, f64(5), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}

	handler := assign.NewPlanPreviewHandler(shipments, nil, nil)
	_, err := handler.Execute(context.Background(), assign.PlanRequest{WeightCapT: f64(100)})

	require.NoError(t, err)
	// The handler has no assignment repository at all; compile-time proof
	// that a preview cannot commit.
}
