package assign

import (
	"context"
	"fmt"

	"github.com/cargoplan/cargoplan/internal/application/common"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// AssignResult is the outcome of a single-shipment assignment attempt.
// Assigned=false with a nil error means no feasible voyage exists; that is a
// report, not a failure.
type AssignResult struct {
	Assigned   bool
	VoyageCode string
	Reason     string
}

// AssignShipmentHandler commits the best feasible voyage for one shipment
type AssignShipmentHandler struct {
	shipments   shipment.Repository
	voyages     voyage.Repository
	assignments assignment.Repository
	assigner    *assignment.Assigner
	publisher   Publisher // optional
	recorder    RunRecorder
	clock       shared.Clock
	voyageLimit int
}

func NewAssignShipmentHandler(
	shipments shipment.Repository,
	voyages voyage.Repository,
	assignments assignment.Repository,
	assigner *assignment.Assigner,
	publisher Publisher,
	recorder RunRecorder,
	clock shared.Clock,
) *AssignShipmentHandler {
	if recorder == nil {
		recorder = NoOpRecorder{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AssignShipmentHandler{
		shipments:   shipments,
		voyages:     voyages,
		assignments: assignments,
		assigner:    assigner,
		publisher:   publisher,
		recorder:    recorder,
		clock:       clock,
		voyageLimit: DefaultVoyageLimit,
	}
}

func (h *AssignShipmentHandler) WithVoyageLimit(limit int) *AssignShipmentHandler {
	if limit > 0 {
		h.voyageLimit = limit
	}
	return h
}

// Execute picks and commits the top-ranked feasible voyage for the shipment.
// Already-assigned and non-assignable shipments are rejected with domain
// errors; infeasibility returns Assigned=false.
func (h *AssignShipmentHandler) Execute(ctx context.Context, shipmentCode string) (*AssignResult, error) {
	logger := common.LoggerFromContext(ctx)

	s, err := h.shipments.FindByCode(ctx, shipmentCode)
	if err != nil {
		return nil, err
	}
	if !s.IsAssignable() {
		return nil, shared.NewShipmentError(
			fmt.Sprintf("shipment %s has status %s and cannot be assigned", s.Code(), s.Status()),
			s.Code(),
		)
	}
	if current, ok, err := h.assignments.ActiveVoyageCode(ctx, s.Code()); err != nil {
		return nil, fmt.Errorf("failed to check current assignment: %w", err)
	} else if ok {
		return nil, shared.NewAssignmentError(
			fmt.Sprintf("shipment %s is already assigned to %s", s.Code(), current),
			s.Code(), current,
		)
	}

	if s.WeightTons() == nil || s.VolumeM3() == nil {
		logger.Debug("missing weight or volume charged as zero", map[string]interface{}{
			"shipment": s.Code(),
		})
	}

	voyages, err := h.voyages.List(ctx, h.voyageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}
	loads, err := h.assignments.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing assignments: %w", err)
	}
	led := assignment.BuildLedger(voyages, loads)

	decision := h.assigner.Assign(s, voyages, led)
	if decision == nil {
		h.recorder.RecordSkip("infeasible")
		logger.Info("no feasible voyage for shipment", map[string]interface{}{
			"shipment": s.Code(),
		})
		return &AssignResult{Assigned: false, Reason: "no suitable voyage (lane/window/capacity)"}, nil
	}

	if err := h.assignments.Move(ctx, s.Code(), decision.VoyageCode); err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}
	logger.Info("shipment assigned", map[string]interface{}{
		"shipment": s.Code(),
		"voyage":   decision.VoyageCode,
	})
	h.publishEvent(ctx, s.Code(), decision.VoyageCode)
	return &AssignResult{Assigned: true, VoyageCode: decision.VoyageCode, Reason: decision.Reason}, nil
}

// MoveTo commits an operator-chosen voyage for the shipment, replacing any
// existing assignment. The proposal still goes through the strict
// feasibility gate; an operator cannot force cargo past a declared cap.
func (h *AssignShipmentHandler) MoveTo(ctx context.Context, shipmentCode, voyageCode string) (*AssignResult, error) {
	logger := common.LoggerFromContext(ctx)

	s, err := h.shipments.FindByCode(ctx, shipmentCode)
	if err != nil {
		return nil, err
	}
	if !s.IsAssignable() {
		return nil, shared.NewShipmentError(
			fmt.Sprintf("shipment %s has status %s and cannot be assigned", s.Code(), s.Status()),
			s.Code(),
		)
	}
	v, err := h.voyages.FindByCode(ctx, voyageCode)
	if err != nil {
		return nil, err
	}
	if s.WeightTons() == nil || s.VolumeM3() == nil {
		logger.Debug("missing weight or volume charged as zero", map[string]interface{}{
			"shipment": s.Code(),
		})
	}

	loads, err := h.assignments.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing assignments: %w", err)
	}
	led := assignment.BuildLedger([]*voyage.Voyage{v}, loads)

	// A move replaces the prior assignment, so the shipment's own charge
	// must not count against the target when it already sits there.
	if current, ok, err := h.assignments.ActiveVoyageCode(ctx, s.Code()); err != nil {
		return nil, fmt.Errorf("failed to check current assignment: %w", err)
	} else if ok {
		led.Release(current, s)
	}

	if fit := h.assigner.Verify(s, v, led); !fit.OK {
		switch fit.Reason {
		case assignment.ReasonWeight, assignment.ReasonVolume, assignment.ReasonWeightVolume:
			return nil, shared.NewCapacityOverflowError(s.Code(), v.Code(), fit.Reason)
		default:
			return nil, shared.NewAssignmentError(
				fmt.Sprintf("shipment %s does not fit voyage %s (%s)", s.Code(), v.Code(), fit.Reason),
				s.Code(), v.Code(),
			)
		}
	}

	if err := h.assignments.Move(ctx, s.Code(), v.Code()); err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}
	logger.Info("shipment moved", map[string]interface{}{
		"shipment": s.Code(),
		"voyage":   v.Code(),
	})
	h.publishEvent(ctx, s.Code(), v.Code())
	return &AssignResult{
		Assigned:   true,
		VoyageCode: v.Code(),
		Reason: fmt.Sprintf("%s %s->%s departing %s",
			v.Code(), v.Origin(), v.Destination(), v.DepartAt().Format("2006-01-02")),
	}, nil
}

// Unassign removes a shipment from a voyage and publishes the change
func (h *AssignShipmentHandler) Unassign(ctx context.Context, voyageCode, shipmentCode string) error {
	if err := h.assignments.Delete(ctx, voyageCode, shipmentCode); err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	if h.publisher != nil {
		event := AssignmentEvent{
			Type:         "unassigned",
			ShipmentCode: shipmentCode,
			VoyageCode:   voyageCode,
			OccurredAt:   h.clock.Now(),
		}
		if err := h.publisher.Publish(ctx, shipmentCode, event); err != nil {
			common.LoggerFromContext(ctx).Warn("failed to publish unassignment event", map[string]interface{}{
				"shipment": shipmentCode,
				"error":    err.Error(),
			})
		}
	}
	return nil
}

func (h *AssignShipmentHandler) publishEvent(ctx context.Context, shipmentCode, voyageCode string) {
	if h.publisher == nil {
		return
	}
	event := AssignmentEvent{
		Type:         "assigned",
		ShipmentCode: shipmentCode,
		VoyageCode:   voyageCode,
		OccurredAt:   h.clock.Now(),
	}
	if err := h.publisher.Publish(ctx, shipmentCode, event); err != nil {
		common.LoggerFromContext(ctx).Warn("failed to publish assignment event", map[string]interface{}{
			"shipment": shipmentCode,
			"error":    err.Error(),
		})
	}
}
