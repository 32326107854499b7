package assign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cargoplan/cargoplan/internal/application/common"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
)

// PlanRequest selects the unassigned pool and describes the hypothetical
// vessel. Origin and Destination are case-insensitive substring filters;
// empty means no filter. A malformed StartAfter is the transport layer's
// problem; here a zero time means no lower bound.
type PlanRequest struct {
	VesselName  string
	WeightCapT  *float64
	VolumeCapM3 *float64
	Origin      string
	Destination string
	StartAfter  time.Time
}

// PlanResult pairs the computed plan with a prose narrative. The narrative
// is advisory; the plan fields are the authoritative output.
type PlanResult struct {
	Plan      *assignment.Plan
	Narrative string
}

// PlanPreviewHandler runs a non-committing First-Fit-Decreasing preview of a
// shipment pool against one hypothetical vessel. Nothing is persisted.
type PlanPreviewHandler struct {
	shipments     shipment.Repository
	advisor       Advisor // optional
	recorder      RunRecorder
	shipmentLimit int
}

func NewPlanPreviewHandler(shipments shipment.Repository, advisor Advisor, recorder RunRecorder) *PlanPreviewHandler {
	if recorder == nil {
		recorder = NoOpRecorder{}
	}
	return &PlanPreviewHandler{
		shipments:     shipments,
		advisor:       advisor,
		recorder:      recorder,
		shipmentLimit: DefaultShipmentLimit,
	}
}

func (h *PlanPreviewHandler) WithShipmentLimit(limit int) *PlanPreviewHandler {
	if limit > 0 {
		h.shipmentLimit = limit
	}
	return h
}

// Execute selects the pool, packs it, and attaches a narrative. An advisor
// failure degrades to a deterministic summary and never fails the preview.
func (h *PlanPreviewHandler) Execute(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	pool, err := h.shipments.ListUnassigned(ctx, shipment.AssignableStatuses, h.shipmentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned shipments: %w", err)
	}
	pool = filterPool(pool, req)

	vessel := assignment.Vessel{
		Name:        req.VesselName,
		WeightCapT:  req.WeightCapT,
		VolumeCapM3: req.VolumeCapM3,
	}
	plan := assignment.PlanFFD(pool, vessel)

	return &PlanResult{
		Plan:      plan,
		Narrative: h.narrative(ctx, vessel, plan, len(pool)),
	}, nil
}

func filterPool(pool []*shipment.Shipment, req PlanRequest) []*shipment.Shipment {
	out := make([]*shipment.Shipment, 0, len(pool))
	for _, s := range pool {
		if req.Origin != "" && !containsFold(s.Origin(), req.Origin) {
			continue
		}
		if req.Destination != "" && !containsFold(s.Destination(), req.Destination) {
			continue
		}
		if !req.StartAfter.IsZero() && s.ShipDate().Before(req.StartAfter) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

func (h *PlanPreviewHandler) narrative(ctx context.Context, vessel assignment.Vessel, plan *assignment.Plan, poolSize int) string {
	fallback := fmt.Sprintf("Planned %d of %d shipments; weight %d%%, volume %d%% utilized.",
		len(plan.Assigned), poolSize, plan.Utilization.WeightPct, plan.Utilization.VolumePct)
	if h.advisor == nil {
		return fallback
	}

	skipped := make(map[string]string, len(plan.Skipped))
	for _, sk := range plan.Skipped {
		skipped[sk.ShipmentCode] = sk.Reason
	}
	summary := PlanSummary{
		VesselName:  vessel.Name,
		WeightCapT:  vessel.WeightCapT,
		VolumeCapM3: vessel.VolumeCapM3,
		Assigned:    plan.Assigned,
		Skipped:     skipped,
		WeightPct:   plan.Utilization.WeightPct,
		VolumePct:   plan.Utilization.VolumePct,
	}
	text, err := h.advisor.PlanNarrative(ctx, summary)
	if err != nil {
		h.recorder.RecordAdvisorFallback()
		common.LoggerFromContext(ctx).Warn("plan narrative unavailable, using summary", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}
	return text
}
