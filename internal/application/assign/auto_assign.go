package assign

import (
	"context"
	"fmt"
	"time"

	"github.com/cargoplan/cargoplan/internal/application/common"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shared"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

const (
	// Pool bounds keep one batch run bounded in practice; they mirror the
	// fetch limits the route handlers always used.
	DefaultShipmentLimit = 500
	DefaultVoyageLimit   = 200

	// maxRouteHints caps advisor calls per batch run
	maxRouteHints = 3

	// fallbackRouteHint is the deterministic text used when the advisor
	// is unavailable; an advisor failure never fails the batch.
	fallbackRouteHint = "No direct lane. Consider connecting via nearby ports that respect depart/arrive times and remaining capacity."
)

// AssignedPair records one committed pick of a batch run
type AssignedPair struct {
	ShipmentCode string
	VoyageCode   string
}

// BatchResult is the structured outcome of one committing batch run.
// Batch operations always return this shape, never a bare error, so partial
// success stays inspectable.
type BatchResult struct {
	Assigned  int
	Processed int
	Pairs     []AssignedPair
	Messages  []string
}

// AssignmentEvent is the payload published after a commit
type AssignmentEvent struct {
	Type         string    `json:"type"` // "assigned" or "unassigned"
	ShipmentCode string    `json:"shipmentCode"`
	VoyageCode   string    `json:"voyageCode"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// AutoAssignHandler is the committing batch auto-assigner. It pulls the
// unassigned pool, rebuilds the capacity ledger from persisted assignments,
// and walks the pool in priority order, committing one move per shipment.
//
// Processing within a run is strictly sequential: shipment N's ledger
// update must be visible to shipment N+1's feasibility check, because
// capacity consumption is cumulative and order-dependent.
type AutoAssignHandler struct {
	shipments     shipment.Repository
	voyages       voyage.Repository
	assignments   assignment.Repository
	assigner      *assignment.Assigner
	advisor       Advisor   // optional
	publisher     Publisher // optional
	recorder      RunRecorder
	clock         shared.Clock
	shipmentLimit int
	voyageLimit   int
}

// NewAutoAssignHandler wires the batch auto-assigner. advisor and publisher
// may be nil; recorder and clock fall back to no-op/real implementations.
func NewAutoAssignHandler(
	shipments shipment.Repository,
	voyages voyage.Repository,
	assignments assignment.Repository,
	assigner *assignment.Assigner,
	advisor Advisor,
	publisher Publisher,
	recorder RunRecorder,
	clock shared.Clock,
) *AutoAssignHandler {
	if recorder == nil {
		recorder = NoOpRecorder{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AutoAssignHandler{
		shipments:     shipments,
		voyages:       voyages,
		assignments:   assignments,
		assigner:      assigner,
		advisor:       advisor,
		publisher:     publisher,
		recorder:      recorder,
		clock:         clock,
		shipmentLimit: DefaultShipmentLimit,
		voyageLimit:   DefaultVoyageLimit,
	}
}

// WithLimits overrides the pool sizes loaded per batch run
func (h *AutoAssignHandler) WithLimits(shipmentLimit, voyageLimit int) *AutoAssignHandler {
	if shipmentLimit > 0 {
		h.shipmentLimit = shipmentLimit
	}
	if voyageLimit > 0 {
		h.voyageLimit = voyageLimit
	}
	return h
}

// Execute runs one committing batch pass. One shipment's infeasibility never
// aborts the batch; each committed move is independently valid against
// capacity at its commit time, so a partially completed run is acceptable.
func (h *AutoAssignHandler) Execute(ctx context.Context) (*BatchResult, error) {
	logger := common.LoggerFromContext(ctx)

	pool, err := h.shipments.ListUnassigned(ctx, shipment.AssignableStatuses, h.shipmentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned shipments: %w", err)
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

	result := &BatchResult{
		Processed: len(pool),
		Pairs:     []AssignedPair{},
		Messages:  []string{},
	}
	var leftovers []*shipment.Shipment

	for _, s := range pool {
		if s.ShipDate().IsZero() {
			logger.Warn("shipment has malformed ship date, treated as infeasible", map[string]interface{}{
				"shipment": s.Code(),
			})
		}
		if s.WeightTons() == nil || s.VolumeM3() == nil {
			logger.Debug("missing weight or volume charged as zero", map[string]interface{}{
				"shipment": s.Code(),
			})
		}

		decision := h.assigner.Assign(s, voyages, led)
		if decision == nil {
			h.recorder.RecordSkip("infeasible")
			result.Messages = append(result.Messages,
				fmt.Sprintf("%s: no suitable voyage (lane/window/capacity)", s.Code()))
			leftovers = append(leftovers, s)
			continue
		}

		if err := h.assignments.Move(ctx, s.Code(), decision.VoyageCode); err != nil {
			h.recorder.RecordSkip("commit-failed")
			logger.Error("failed to commit assignment", map[string]interface{}{
				"shipment": s.Code(),
				"voyage":   decision.VoyageCode,
				"error":    err.Error(),
			})
			result.Messages = append(result.Messages,
				fmt.Sprintf("%s: commit failed: %v", s.Code(), err))
			continue
		}

		led.Apply(decision.VoyageCode, s)
		result.Assigned++
		result.Pairs = append(result.Pairs, AssignedPair{ShipmentCode: s.Code(), VoyageCode: decision.VoyageCode})
		result.Messages = append(result.Messages,
			fmt.Sprintf("%s -> %s", s.Code(), decision.Reason))
		h.publish(ctx, s.Code(), decision.VoyageCode)
	}

	h.appendRouteHints(ctx, leftovers, voyages, led, result)
	h.recorder.RecordBatchRun(result.Assigned, result.Processed)
	return result, nil
}

func (h *AutoAssignHandler) publish(ctx context.Context, shipmentCode, voyageCode string) {
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
		// Event delivery is best-effort; the assignment already committed.
		common.LoggerFromContext(ctx).Warn("failed to publish assignment event", map[string]interface{}{
			"shipment": shipmentCode,
			"error":    err.Error(),
		})
	}
}

// appendRouteHints asks the advisor for non-binding multi-leg ideas for a
// few leftover shipments. Advisory only: nothing here is ever committed.
func (h *AutoAssignHandler) appendRouteHints(
	ctx context.Context,
	leftovers []*shipment.Shipment,
	voyages []*voyage.Voyage,
	led assignment.Ledger,
	result *BatchResult,
) {
	if h.advisor == nil || len(leftovers) == 0 {
		return
	}
	for i, s := range leftovers {
		if i >= maxRouteHints {
			break
		}
		hint := HintContext{
			Shipment:   shipmentContext(s),
			Candidates: nearCandidates(h.assigner.Checker(), s, voyages, led),
		}
		text, err := h.advisor.RouteHint(ctx, hint)
		if err != nil {
			h.recorder.RecordAdvisorFallback()
			text = fallbackRouteHint
		}
		result.Messages = append(result.Messages, fmt.Sprintf("%s: %s", s.Code(), text))
	}
}

// nearCandidates pre-filters voyages for hint generation: the relaxed lane
// rule plus the temporal window in advisory date mode, so malformed dates
// pass but a window that can never work is dropped. This list feeds
// advisory text only and never gates a commit.
func nearCandidates(checker assignment.Checker, s *shipment.Shipment, voyages []*voyage.Voyage, led assignment.Ledger) []CandidateVoyage {
	out := make([]CandidateVoyage, 0, len(voyages))
	for _, v := range voyages {
		if !assignment.LaneNear(s.Origin(), s.Destination(), v.Origin(), v.Destination()) {
			continue
		}
		if !checker.TimeFits(s, v, assignment.DateAdvisory).OK {
			continue
		}
		out = append(out, candidateVoyage(v, led))
	}
	return out
}

func candidateVoyage(v *voyage.Voyage, led assignment.Ledger) CandidateVoyage {
	c := CandidateVoyage{
		Code:        v.Code(),
		Origin:      v.Origin(),
		Destination: v.Destination(),
		DepartAt:    v.DepartAt(),
		ArriveBy:    v.ArriveBy(),
	}
	if entry := led.Entry(v.Code()); entry != nil {
		c.RemainingWeight = entry.RemainingWeight()
		c.RemainingVolume = entry.RemainingVolume()
		c.AssignedCount = entry.Count
	}
	return c
}

func shipmentContext(s *shipment.Shipment) ShipmentContext {
	return ShipmentContext{
		Code:        s.Code(),
		IsPriority:  s.IsPriority(),
		Origin:      s.Origin(),
		Destination: s.Destination(),
		ShipDate:    s.ShipDate(),
		TransitDays: s.TransitDays(),
		WeightTons:  s.ChargeableWeight(),
		VolumeM3:    s.ChargeableVolume(),
	}
}
