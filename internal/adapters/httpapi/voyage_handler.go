package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/voyage"
)

// VoyageHandler serves voyage planning and batch assignment routes
type VoyageHandler struct {
	Voyages     voyage.Repository
	Assignments assignment.Repository
	Runner      *assign.Runner
}

func (h *VoyageHandler) Register(r *gin.Engine) {
	group := r.Group("/api/voyages")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:code", h.get)
	group.DELETE("/:code", h.delete)
	group.DELETE("/:code/shipments/:shipmentCode", h.unassign)
	group.POST("/auto-assign", h.autoAssign)
}

type voyageRequest struct {
	Code        string   `json:"code" binding:"required"`
	VesselName  string   `json:"vesselName"`
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	DepartAt    string   `json:"departAt" binding:"required"`
	ArriveBy    string   `json:"arriveBy" binding:"required"`
	WeightCapT  *float64 `json:"weightCapT"`
	VolumeCapM3 *float64 `json:"volumeCapM3"`
}

type voyageResponse struct {
	Code          string             `json:"code"`
	VesselName    string             `json:"vesselName,omitempty"`
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	DepartAt      string             `json:"departAt"`
	ArriveBy      string             `json:"arriveBy"`
	WeightCapT    *float64           `json:"weightCapT,omitempty"`
	VolumeCapM3   *float64           `json:"volumeCapM3,omitempty"`
	UsedWeightT   float64            `json:"usedWeightT"`
	UsedVolumeM3  float64            `json:"usedVolumeM3"`
	AssignedCount int                `json:"assignedCount"`
	Shipments     []manifestResponse `json:"shipments,omitempty"`
}

type manifestResponse struct {
	ShipmentCode string `json:"shipmentCode"`
	AssignedAt   string `json:"assignedAt"`
}

func toVoyageResponse(v *voyage.Voyage) voyageResponse {
	return voyageResponse{
		Code:        v.Code(),
		VesselName:  v.VesselName(),
		Origin:      v.Origin(),
		Destination: v.Destination(),
		DepartAt:    v.DepartAt().Format(time.RFC3339),
		ArriveBy:    v.ArriveBy().Format(time.RFC3339),
		WeightCapT:  v.WeightCapT(),
		VolumeCapM3: v.VolumeCapM3(),
	}
}

func (h *VoyageHandler) create(c *gin.Context) {
	var req voyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	departAt, err := parseDate(req.DepartAt)
	if err != nil {
		fail(c, http.StatusBadRequest, "departAt: expected YYYY-MM-DD or RFC 3339")
		return
	}
	arriveBy, err := parseDate(req.ArriveBy)
	if err != nil {
		fail(c, http.StatusBadRequest, "arriveBy: expected YYYY-MM-DD or RFC 3339")
		return
	}

	v, err := voyage.NewVoyage(req.Code, req.VesselName, req.Origin, req.Destination,
		departAt, arriveBy, req.WeightCapT, req.VolumeCapM3)
	if err != nil {
		failFromError(c, err)
		return
	}
	if err := h.Voyages.Save(c.Request.Context(), v); err != nil {
		failFromError(c, err)
		return
	}
	created(c, toVoyageResponse(v))
}

func (h *VoyageHandler) list(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	voyages, err := h.Voyages.List(c.Request.Context(), limit)
	if err != nil {
		failFromError(c, err)
		return
	}
	loads, err := h.Assignments.ListLoads(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	type usage struct {
		weight float64
		volume float64
		count  int
	}
	used := make(map[string]usage, len(voyages))
	for _, load := range loads {
		u := used[load.VoyageCode]
		u.weight += load.WeightTons
		u.volume += load.VolumeM3
		u.count++
		used[load.VoyageCode] = u
	}

	responses := make([]voyageResponse, 0, len(voyages))
	for _, v := range voyages {
		response := toVoyageResponse(v)
		u := used[v.Code()]
		response.UsedWeightT = u.weight
		response.UsedVolumeM3 = u.volume
		response.AssignedCount = u.count
		responses = append(responses, response)
	}
	ok(c, responses)
}

func (h *VoyageHandler) get(c *gin.Context) {
	code := c.Param("code")
	v, err := h.Voyages.FindByCode(c.Request.Context(), code)
	if err != nil {
		failFromError(c, err)
		return
	}

	assignments, err := h.Assignments.ListForVoyage(c.Request.Context(), code)
	if err != nil {
		failFromError(c, err)
		return
	}

	response := toVoyageResponse(v)
	response.Shipments = make([]manifestResponse, 0, len(assignments))
	for _, a := range assignments {
		response.Shipments = append(response.Shipments, manifestResponse{
			ShipmentCode: a.ShipmentCode(),
			AssignedAt:   a.AssignedAt().Format(time.RFC3339),
		})
	}
	ok(c, response)
}

func (h *VoyageHandler) delete(c *gin.Context) {
	if err := h.Voyages.Delete(c.Request.Context(), c.Param("code")); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, nil)
}

func (h *VoyageHandler) unassign(c *gin.Context) {
	err := h.Runner.Unassign(c.Request.Context(), c.Param("code"), c.Param("shipmentCode"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, nil)
}

func (h *VoyageHandler) autoAssign(c *gin.Context) {
	result, err := h.Runner.AutoAssign(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	pairs := make([]gin.H, 0, len(result.Pairs))
	for _, pair := range result.Pairs {
		pairs = append(pairs, gin.H{
			"shipmentCode": pair.ShipmentCode,
			"voyageCode":   pair.VoyageCode,
		})
	}
	ok(c, gin.H{
		"assigned":  result.Assigned,
		"processed": result.Processed,
		"pairs":     pairs,
		"messages":  result.Messages,
	})
}
