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

// SuggestResult is the outcome of an advisor-guided assignment. Committed
// tells the caller whether anything was persisted; Hint carries routing
// ideas when no direct voyage is feasible.
type SuggestResult struct {
	Committed  bool
	VoyageCode string
	Why        string
	Hint       string
}

// SuggestHandler runs propose-then-verify assignment for one shipment. The
// advisor proposes a voyage from pre-filtered feasible candidates; the
// proposal is re-verified against the strict rules before anything commits.
// The advisor never has commit authority.
type SuggestHandler struct {
	shipments   shipment.Repository
	voyages     voyage.Repository
	assignments assignment.Repository
	assigner    *assignment.Assigner
	advisor     Advisor // optional
	publisher   Publisher
	recorder    RunRecorder
	clock       shared.Clock
	voyageLimit int
}

func NewSuggestHandler(
	shipments shipment.Repository,
	voyages voyage.Repository,
	assignments assignment.Repository,
	assigner *assignment.Assigner,
	advisor Advisor,
	publisher Publisher,
	recorder RunRecorder,
	clock shared.Clock,
) *SuggestHandler {
	if recorder == nil {
		recorder = NoOpRecorder{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SuggestHandler{
		shipments:   shipments,
		voyages:     voyages,
		assignments: assignments,
		assigner:    assigner,
		advisor:     advisor,
		publisher:   publisher,
		recorder:    recorder,
		clock:       clock,
		voyageLimit: DefaultVoyageLimit,
	}
}

func (h *SuggestHandler) WithVoyageLimit(limit int) *SuggestHandler {
	if limit > 0 {
		h.voyageLimit = limit
	}
	return h
}

// Execute resolves one shipment through the advisor when available, falling
// back to the deterministic assigner. When no direct voyage is feasible at
// all, it returns an advisory routing hint instead of committing anything.
func (h *SuggestHandler) Execute(ctx context.Context, shipmentCode string) (*SuggestResult, error) {
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

	voyages, err := h.voyages.List(ctx, h.voyageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list voyages: %w", err)
	}
	loads, err := h.assignments.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing assignments: %w", err)
	}
	led := assignment.BuildLedger(voyages, loads)

	feasible := h.feasibleVoyages(s, voyages, led)
	if len(feasible) == 0 {
		return h.routeHint(ctx, s, voyages, led)
	}

	if proposal := h.propose(ctx, s, feasible, led); proposal != nil {
		v := findVoyage(voyages, proposal.VoyageCode)
		if v != nil && h.assigner.Verify(s, v, led).OK {
			if err := h.commit(ctx, s.Code(), v.Code()); err != nil {
				return nil, err
			}
			return &SuggestResult{Committed: true, VoyageCode: v.Code(), Why: proposal.Why}, nil
		}
		logger.Warn("advisor proposal failed verification, falling back", map[string]interface{}{
			"shipment": s.Code(),
			"proposed": proposal.VoyageCode,
		})
	}

	// Deterministic fallback: the feasible set is non-empty, so the assigner
	// always finds a pick here.
	decision := h.assigner.Assign(s, voyages, led)
	if decision == nil {
		return &SuggestResult{Committed: false, Why: "no suitable voyage (lane/window/capacity)"}, nil
	}
	if err := h.commit(ctx, s.Code(), decision.VoyageCode); err != nil {
		return nil, err
	}
	return &SuggestResult{Committed: true, VoyageCode: decision.VoyageCode, Why: decision.Reason}, nil
}

func (h *SuggestHandler) feasibleVoyages(s *shipment.Shipment, voyages []*voyage.Voyage, led assignment.Ledger) []*voyage.Voyage {
	checker := h.assigner.Checker()
	out := make([]*voyage.Voyage, 0, len(voyages))
	for _, v := range voyages {
		if checker.Fits(s, v, led.Entry(v.Code()), assignment.DateStrict).OK {
			out = append(out, v)
		}
	}
	return out
}

func (h *SuggestHandler) propose(ctx context.Context, s *shipment.Shipment, feasible []*voyage.Voyage, led assignment.Ledger) *Proposal {
	if h.advisor == nil {
		return nil
	}
	candidates := make([]CandidateVoyage, 0, len(feasible))
	for _, v := range feasible {
		candidates = append(candidates, candidateVoyage(v, led))
	}
	proposal, err := h.advisor.ProposeVoyage(ctx, shipmentContext(s), candidates)
	if err != nil {
		h.recorder.RecordAdvisorFallback()
		common.LoggerFromContext(ctx).Warn("advisor unavailable, using deterministic pick", map[string]interface{}{
			"shipment": s.Code(),
			"error":    err.Error(),
		})
		return nil
	}
	return proposal
}

func (h *SuggestHandler) routeHint(ctx context.Context, s *shipment.Shipment, voyages []*voyage.Voyage, led assignment.Ledger) (*SuggestResult, error) {
	hint := fallbackRouteHint
	if h.advisor != nil {
		text, err := h.advisor.RouteHint(ctx, HintContext{
			Shipment:   shipmentContext(s),
			Candidates: nearCandidates(h.assigner.Checker(), s, voyages, led),
		})
		if err != nil {
			h.recorder.RecordAdvisorFallback()
		} else {
			hint = text
		}
	}
	return &SuggestResult{Committed: false, Why: "no suitable voyage (lane/window/capacity)", Hint: hint}, nil
}

func (h *SuggestHandler) commit(ctx context.Context, shipmentCode, voyageCode string) error {
	if err := h.assignments.Move(ctx, shipmentCode, voyageCode); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	if h.publisher != nil {
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
	return nil
}

func findVoyage(voyages []*voyage.Voyage, code string) *voyage.Voyage {
	for _, v := range voyages {
		if v.Code() == code {
			return v
		}
	}
	return nil
}
