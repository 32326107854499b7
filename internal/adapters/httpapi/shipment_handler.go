package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargoplan/cargoplan/internal/application/assign"
	"github.com/cargoplan/cargoplan/internal/domain/assignment"
	"github.com/cargoplan/cargoplan/internal/domain/shipment"
)

const defaultListLimit = 100

// ShipmentHandler serves shipment intake, tracking and assignment routes
type ShipmentHandler struct {
	Shipments   shipment.Repository
	Assignments assignment.Repository
	Runner      *assign.Runner
}

func (h *ShipmentHandler) Register(r *gin.Engine) {
	group := r.Group("/api/shipments")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:code", h.get)
	group.DELETE("/:code", h.delete)
	group.PATCH("/:code/status", h.updateStatus)
	group.POST("/:code/events", h.recordEvent)
	group.GET("/:code/events", h.listEvents)
	group.POST("/:code/assign", h.assign)
	group.POST("/:code/move", h.move)
	group.POST("/:code/suggest", h.suggest)
}

type shipmentRequest struct {
	Code        string   `json:"code" binding:"required"`
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	ShipDate    string   `json:"shipDate" binding:"required"`
	TransitDays int      `json:"transitDays"`
	IsPriority  bool     `json:"isPriority"`
	WeightTons  *float64 `json:"weightTons"`
	VolumeM3    *float64 `json:"volumeM3"`
}

type shipmentResponse struct {
	Code              string   `json:"code"`
	Status            string   `json:"status"`
	IsPriority        bool     `json:"isPriority"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	ShipDate          string   `json:"shipDate"`
	TransitDays       int      `json:"transitDays"`
	WeightTons        *float64 `json:"weightTons,omitempty"`
	VolumeM3          *float64 `json:"volumeM3,omitempty"`
	EstimatedDelivery string   `json:"estimatedDelivery"`
	VoyageCode        string   `json:"voyageCode,omitempty"`
}

func toShipmentResponse(s *shipment.Shipment, voyageCode string) shipmentResponse {
	return shipmentResponse{
		Code:              s.Code(),
		Status:            string(s.Status()),
		IsPriority:        s.IsPriority(),
		Origin:            s.Origin(),
		Destination:       s.Destination(),
		ShipDate:          s.ShipDate().Format("2006-01-02"),
		TransitDays:       s.TransitDays(),
		WeightTons:        s.WeightTons(),
		VolumeM3:          s.VolumeM3(),
		EstimatedDelivery: s.EstimatedDelivery().Format("2006-01-02"),
		VoyageCode:        voyageCode,
	}
}

func (h *ShipmentHandler) create(c *gin.Context) {
	var req shipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	shipDate, err := parseDate(req.ShipDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "shipDate: expected YYYY-MM-DD or RFC 3339")
		return
	}

	s, err := shipment.NewShipment(req.Code, req.Origin, req.Destination,
		shipDate, req.TransitDays, req.IsPriority, req.WeightTons, req.VolumeM3)
	if err != nil {
		failFromError(c, err)
		return
	}
	if err := h.Shipments.Save(c.Request.Context(), s); err != nil {
		failFromError(c, err)
		return
	}
	created(c, toShipmentResponse(s, ""))
}

func (h *ShipmentHandler) list(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	shipments, err := h.Shipments.List(c.Request.Context(), limit)
	if err != nil {
		failFromError(c, err)
		return
	}

	responses := make([]shipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		voyageCode, _, err := h.Assignments.ActiveVoyageCode(c.Request.Context(), s.Code())
		if err != nil {
			failFromError(c, err)
			return
		}
		responses = append(responses, toShipmentResponse(s, voyageCode))
	}
	ok(c, responses)
}

func (h *ShipmentHandler) get(c *gin.Context) {
	code := c.Param("code")
	s, err := h.Shipments.FindByCode(c.Request.Context(), code)
	if err != nil {
		failFromError(c, err)
		return
	}
	voyageCode, _, err := h.Assignments.ActiveVoyageCode(c.Request.Context(), code)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, toShipmentResponse(s, voyageCode))
}

func (h *ShipmentHandler) delete(c *gin.Context) {
	if err := h.Shipments.Delete(c.Request.Context(), c.Param("code")); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, nil)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ShipmentHandler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	code := c.Param("code")
	s, err := h.Shipments.FindByCode(c.Request.Context(), code)
	if err != nil {
		failFromError(c, err)
		return
	}
	if err := s.UpdateStatus(shipment.Status(req.Status)); err != nil {
		failFromError(c, err)
		return
	}
	if err := h.Shipments.Save(c.Request.Context(), s); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, toShipmentResponse(s, ""))
}

type eventRequest struct {
	EventType  string `json:"eventType" binding:"required"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	OccurredAt string `json:"occurredAt"`
}

type eventResponse struct {
	EventType  string `json:"eventType"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	OccurredAt string `json:"occurredAt"`
}

func (h *ShipmentHandler) recordEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		parsed, err := parseDate(req.OccurredAt)
		if err != nil {
			fail(c, http.StatusBadRequest, "occurredAt: expected YYYY-MM-DD or RFC 3339")
			return
		}
		occurredAt = parsed
	}

	event, err := shipment.NewTrackingEvent(req.EventType, req.Location, req.Notes, occurredAt)
	if err != nil {
		failFromError(c, err)
		return
	}
	if err := h.Shipments.RecordEvent(c.Request.Context(), c.Param("code"), event); err != nil {
		failFromError(c, err)
		return
	}
	created(c, eventResponse{
		EventType:  event.EventType(),
		Location:   event.Location(),
		Notes:      event.Notes(),
		OccurredAt: event.OccurredAt().Format(time.RFC3339),
	})
}

func (h *ShipmentHandler) listEvents(c *gin.Context) {
	events, err := h.Shipments.ListEvents(c.Request.Context(), c.Param("code"))
	if err != nil {
		failFromError(c, err)
		return
	}

	responses := make([]eventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, eventResponse{
			EventType:  event.EventType(),
			Location:   event.Location(),
			Notes:      event.Notes(),
			OccurredAt: event.OccurredAt().Format(time.RFC3339),
		})
	}
	ok(c, responses)
}

func (h *ShipmentHandler) assign(c *gin.Context) {
	result, err := h.Runner.AssignShipment(c.Request.Context(), c.Param("code"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, gin.H{
		"assigned":   result.Assigned,
		"voyageCode": result.VoyageCode,
		"reason":     result.Reason,
	})
}

type moveRequest struct {
	VoyageCode string `json:"voyageCode" binding:"required"`
}

func (h *ShipmentHandler) move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.Runner.MoveShipment(c.Request.Context(), c.Param("code"), req.VoyageCode)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, gin.H{
		"assigned":   result.Assigned,
		"voyageCode": result.VoyageCode,
		"reason":     result.Reason,
	})
}

func (h *ShipmentHandler) suggest(c *gin.Context) {
	result, err := h.Runner.Suggest(c.Request.Context(), c.Param("code"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, gin.H{
		"committed":  result.Committed,
		"voyageCode": result.VoyageCode,
		"why":        result.Why,
		"hint":       result.Hint,
	})
}
