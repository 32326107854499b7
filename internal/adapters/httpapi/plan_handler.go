package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargoplan/cargoplan/internal/application/assign"
)

// PlanHandler serves the non-committing load plan preview
type PlanHandler struct {
	Runner *assign.Runner
}

func (h *PlanHandler) Register(r *gin.Engine) {
	r.POST("/api/plan/ffd", h.preview)
}

type planRequest struct {
	VesselName  string   `json:"vesselName"`
	WeightCapT  *float64 `json:"weightCapT"`
	VolumeCapM3 *float64 `json:"volumeCapM3"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	StartAfter  string   `json:"startAfter"`
}

func (h *PlanHandler) preview(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// Preview is advisory: a malformed startAfter is dropped rather than
	// rejected, so a sloppy filter still yields a useful plan.
	var startAfter time.Time
	if req.StartAfter != "" {
		if parsed, err := parseDate(req.StartAfter); err == nil {
			startAfter = parsed
		}
	}

	result, err := h.Runner.PlanPreview(c.Request.Context(), assign.PlanRequest{
		VesselName:  req.VesselName,
		WeightCapT:  req.WeightCapT,
		VolumeCapM3: req.VolumeCapM3,
		Origin:      req.Origin,
		Destination: req.Destination,
		StartAfter:  startAfter,
	})
	if err != nil {
		failFromError(c, err)
		return
	}

	skipped := make([]planSkipResponse, 0, len(result.Plan.Skipped))
	for _, sk := range result.Plan.Skipped {
		skipped = append(skipped, planSkipResponse{ShipmentCode: sk.ShipmentCode, Reason: sk.Reason})
	}

	ok(c, gin.H{
		"assigned": result.Plan.Assigned,
		"skipped":  skipped,
		"utilization": gin.H{
			"weightPct": result.Plan.Utilization.WeightPct,
			"volumePct": result.Plan.Utilization.VolumePct,
		},
		"usedWeight": result.Plan.UsedWeight,
		"usedVolume": result.Plan.UsedVolume,
		"narrative":  result.Narrative,
	})
}

type planSkipResponse struct {
	ShipmentCode string `json:"shipmentCode"`
	Reason       string `json:"reason"`
}
