package assign_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

func TestMoveShipment_CommitsNamedVoyage(t *testing.T) {
	// The ranking would pick VOY-001 (earlier departure); the operator names
	// VOY-002 and that is what commits.
	s := mkShipment("SHP-101", false, f64(10), f64(20))
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(40), f64(300)),
		mkVoyage("VOY-002", "2025-08-11", "2025-08-16", f64(40), f64(300)),
	}}
	assignments := newFakeAssignments(s)
	publisher := &fakePublisher{}

	handler := assign.NewAssignShipmentHandler(shipments, voyages, assignments,
		newAssigner(), publisher, nil, nil)
	result, err := handler.MoveTo(context.Background(), "SHP-101", "VOY-002")

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	assert.Equal(t, "VOY-002", result.VoyageCode)
	assert.Equal(t, "VOY-002", assignments.active["SHP-101"])
	require.Len(t, publisher.events, 1)
	event := publisher.events[0].value.(assign.AssignmentEvent)
	assert.Equal(t, "assigned", event.Type)
}

func TestMoveShipment_ReplacesExistingAssignment(t *testing.T) {
	s := mkShipment("SHP-101", false, f64(10), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-002", "2025-08-11", "2025-08-16", f64(40), nil),
	}}
	assignments := newFakeAssignments(s)
	assignments.active["SHP-101"] = "VOY-001"

	handler := assign.NewAssignShipmentHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, nil)
	result, err := handler.MoveTo(context.Background(), "SHP-101", "VOY-002")

	require.NoError(t, err)
	assert.True(t, result.Assigned)
	assert.Equal(t, "VOY-002", assignments.active["SHP-101"])
}

func TestMoveShipment_SameVoyageMoveDoesNotDoubleCharge(t *testing.T) {
	// 15t already sits on the 20t voyage as this shipment's own charge. A
	// re-move to the same voyage must release that charge before verifying,
	// or 15+15 would overflow a voyage the shipment already rides.
	s := mkShipment("SHP-101", false, f64(15), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	assignments := newFakeAssignments(s)
	assignments.active["SHP-101"] = "VOY-001"

	handler := assign.NewAssignShipmentHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, nil)
	result, err := handler.MoveTo(context.Background(), "SHP-101", "VOY-001")

	require.NoError(t, err)
	assert.True(t, result.Assigned)
}

func TestMoveShipment_OverCapacityIsOverflowError(t *testing.T) {
	s := mkShipment("SHP-101", false, f64(30), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	assignments := newFakeAssignments(s)

	handler := assign.NewAssignShipmentHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, nil)
	_, err := handler.MoveTo(context.Background(), "SHP-101", "VOY-001")

	var overflow *shared.CapacityOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "SHP-101", overflow.ShipmentCode)
	assert.Equal(t, "VOY-001", overflow.VoyageCode)
	assert.Equal(t, "weight", overflow.Dimension)
	assert.Empty(t, assignments.moved)
}

func TestMoveShipment_LaneMismatchIsAssignmentError(t *testing.T) {
	s := mkShipment("SHP-101", false, f64(1), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		voyage.Reconstruct("VOY-001", "MV Test", "Mumbai", "Kolkata",
			day("2025-08-10"), day("2025-08-20"), f64(40), nil),
	}}
	assignments := newFakeAssignments(s)

	handler := assign.NewAssignShipmentHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, nil)
	_, err := handler.MoveTo(context.Background(), "SHP-101", "VOY-001")

	var overflow *shared.CapacityOverflowError
	assert.False(t, errors.As(err, &overflow))
	var assignErr *shared.AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Empty(t, assignments.moved)
}

func TestMoveShipment_TerminalStatusRejected(t *testing.T) {
	s := shipment.Reconstruct("SHP-101", shipment.StatusDelivered, false,
		"Mumbai", "Chennai", day("2025-08-09"), 5, f64(1), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(40), nil),
	}}
	assignments := newFakeAssignments(s)

	handler := assign.NewAssignShipmentHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, nil)
	_, err := handler.MoveTo(context.Background(), "SHP-101", "VOY-001")

	var shipmentErr *shared.ShipmentError
	require.ErrorAs(t, err, &shipmentErr)
	assert.Empty(t, assignments.moved)
}
