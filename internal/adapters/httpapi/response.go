package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargoplan/cargoplan/internal/domain/shared"
)

type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Code: 0, Message: "ok", Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "created", Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Code: status, Message: message})
}

// failFromError maps domain errors to HTTP status codes
func failFromError(c *gin.Context, err error) {
	var validationErr *shared.ValidationError
	var shipmentNotFound *shared.ShipmentNotFoundError
	var voyageNotFound *shared.VoyageNotFoundError
	var shipmentErr *shared.ShipmentError
	var overflowErr *shared.CapacityOverflowError
	var assignmentErr *shared.AssignmentError

	switch {
	case errors.As(err, &validationErr):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &shipmentNotFound), errors.As(err, &voyageNotFound):
		fail(c, http.StatusNotFound, err.Error())
	// Terminal-status shipments and infeasible moves are client-caused
	// conflicts with current state, not server failures.
	case errors.As(err, &shipmentErr), errors.As(err, &overflowErr), errors.As(err, &assignmentErr):
		fail(c, http.StatusConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp. Commit
// paths call this and reject malformed input outright; silently coercing a
// bad date into "no constraint" would let an infeasible assignment through.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
