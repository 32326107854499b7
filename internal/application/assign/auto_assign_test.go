package assign_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

func TestAutoAssign_ConsumesCapacityInPoolOrder(t *testing.T) {
	// One 20t voyage; the priority shipment comes first in the pool and
	// takes 12t, leaving only 8t for the 10t shipment behind it.
	prio := mkShipment("SHP-PRIO", true, f64(12), nil)
	plain := mkShipment("SHP-PLAIN", false, f64(10), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{prio, plain}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	assignments := newFakeAssignments(prio, plain)
	recorder := newFakeRecorder()

	handler := assign.NewAutoAssignHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, recorder, shared.NewMockClock(day("2025-08-08")))
	result, err := handler.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Assigned)
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, "SHP-PRIO", result.Pairs[0].ShipmentCode)
	assert.Equal(t, "VOY-001", result.Pairs[0].VoyageCode)
	assert.Equal(t, 1, recorder.skips["infeasible"])
	assert.Equal(t, 1, recorder.batchRuns)
	assert.Equal(t, 1, recorder.lastAssigned)
}

func TestAutoAssign_CommitFailureDoesNotAbortBatch(t *testing.T) {
	first := mkShipment("SHP-1", false, f64(1), nil)
	second := mkShipment("SHP-2", false, f64(1), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{first, second}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	assignments := newFakeAssignments(first, second)
	assignments.moveErr["SHP-1"] = errors.New("connection reset")
	recorder := newFakeRecorder()

	handler := assign.NewAutoAssignHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, recorder, shared.NewMockClock(day("2025-08-08")))
	result, err := handler.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, []string{"SHP-2"}, assignments.moved)
	assert.Equal(t, 1, recorder.skips["commit-failed"])
}

func TestAutoAssign_ExistingLoadsSeedTheLedger(t *testing.T) {
	// 15t already committed on the voyage; a 10t newcomer cannot fit the
	// remaining 5t.
	existing := mkShipment("SHP-OLD", false, f64(15), nil)
	newcomer := mkShipment("SHP-NEW", false, f64(10), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{newcomer}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	assignments := newFakeAssignments(existing, newcomer)
	assignments.active["SHP-OLD"] = "VOY-001"

	handler := assign.NewAutoAssignHandler(shipments, voyages, assignments,
		newAssigner(), nil, nil, nil, nil)
	result, err := handler.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Assigned)
	assert.Empty(t, assignments.moved)
}

func TestAutoAssign_PublishesEventPerCommit(t *testing.T) {
	s := mkShipment("SHP-1", false, f64(1), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	publisher := &fakePublisher{}

	handler := assign.NewAutoAssignHandler(shipments, voyages, newFakeAssignments(s),
		newAssigner(), nil, publisher, nil, shared.NewMockClock(day("2025-08-08")))
	_, err := handler.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "SHP-1", publisher.events[0].key)
	event, ok := publisher.events[0].value.(assign.AssignmentEvent)
	require.True(t, ok)
	assert.Equal(t, "assigned", event.Type)
	assert.Equal(t, "VOY-001", event.VoyageCode)
}

func TestAutoAssign_PublishFailureDoesNotUndoCommit(t *testing.T) {
	s := mkShipment("SHP-1", false, f64(1), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{s}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	assignments := newFakeAssignments(s)
	publisher := &fakePublisher{err: errors.New("broker down")}

	handler := assign.NewAutoAssignHandler(shipments, voyages, assignments,
		newAssigner(), nil, publisher, nil, nil)
	result, err := handler.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, []string{"SHP-1"}, assignments.moved)
}

func TestAutoAssign_RouteHintForLeftovers(t *testing.T) {
	stranded := mkShipment("SHP-STRANDED", false, f64(100), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{stranded}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	advisor := &fakeAdvisor{
		hintFn: func(hint assign.HintContext) (string, error) {
			assert.Equal(t, "SHP-STRANDED", hint.Shipment.Code)
			return "split across VOY-001 and a feeder leg", nil
		},
	}

	handler := assign.NewAutoAssignHandler(shipments, voyages, newFakeAssignments(stranded),
		newAssigner(), advisor, nil, nil, nil)
	result, err := handler.Execute(context.Background())

	require.NoError(t, err)
	found := false
	for _, msg := range result.Messages {
		if strings.Contains(msg, "feeder leg") {
			found = true
		}
	}
	assert.True(t, found, "expected advisor hint in messages: %v", result.Messages)
}

func TestAutoAssign_HintCandidatesDropImpossibleWindows(t *testing.T) {
	// No strict-lane voyage exists, so the shipment goes to the hint path.
	// Near-lane candidates still pass the advisory window check: a voyage
	// arriving before the shipment's own ETA is dropped, one with missing
	// dates stays in.
	stranded := mkShipment("SHP-STRANDED", false, f64(5), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{stranded}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		voyage.Reconstruct("VOY-NEAR", "MV Test", "Mumbai", "Kolkata",
			day("2025-08-10"), day("2025-08-20"), f64(40), nil),
		voyage.Reconstruct("VOY-LATE", "MV Test", "Mumbai", "Kolkata",
			day("2025-08-10"), day("2025-08-12"), f64(40), nil),
		voyage.Reconstruct("VOY-UNDATED", "MV Test", "Mumbai", "Kolkata",
			time.Time{}, time.Time{}, f64(40), nil),
	}}
	var seen []string
	advisor := &fakeAdvisor{
		hintFn: func(hint assign.HintContext) (string, error) {
			for _, c := range hint.Candidates {
				seen = append(seen, c.Code)
			}
			return "try a Kolkata relay", nil
		},
	}

	handler := assign.NewAutoAssignHandler(shipments, voyages, newFakeAssignments(stranded),
		newAssigner(), advisor, nil, nil, nil)
	_, err := handler.Execute(context.Background())

	require.NoError(t, err)
	assert.Contains(t, seen, "VOY-NEAR")
	assert.Contains(t, seen, "VOY-UNDATED")
	assert.NotContains(t, seen, "VOY-LATE")
}

func TestAutoAssign_AdvisorFailureFallsBackToCannedHint(t *testing.T) {
	stranded := mkShipment("SHP-STRANDED", false, f64(100), nil)
	shipments := &fakeShipments{pool: []*shipment.Shipment{stranded}}
	voyages := &fakeVoyages{pool: []*voyage.Voyage{
		mkVoyage("VOY-001", "2025-08-10", "2025-08-15", f64(20), nil),
	}}
	advisor := &fakeAdvisor{
		hintFn: func(hint assign.HintContext) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	recorder := newFakeRecorder()

	handler := assign.NewAutoAssignHandler(shipments, voyages, newFakeAssignments(stranded),
		newAssigner(), advisor, nil, recorder, nil)
	result, err := handler.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, recorder.advisorFallbacks)
	found := false
	for _, msg := range result.Messages {
		if strings.Contains(msg, "No direct lane") {
			found = true
		}
	}
	assert.True(t, found)
}
