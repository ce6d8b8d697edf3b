package analytics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
)

// Handler handles HTTP requests for analytics recomputation
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ComputeRouteStatistics recomputes a route's daily summary
// POST /api/v1/analytics/routes/:id?date=2026-08-30
func (h *Handler) ComputeRouteStatistics(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid route id")
		return
	}

	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	row, err := h.service.ComputeRouteStatistics(c.Request.Context(), routeID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, row)
}

// ComputeVehicleUtilization recomputes a vehicle's daily summary
// POST /api/v1/analytics/vehicles/:id?date=2026-08-30
func (h *Handler) ComputeVehicleUtilization(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	row, err := h.service.ComputeVehicleUtilization(c.Request.Context(), vehicleID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, row)
}

// parseDate interprets the date query parameter in the reporting time zone
// so the aggregation window matches the requested calendar day.
func (h *Handler) parseDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().In(h.service.Location()), true
	}
	date, err := time.ParseInLocation("2006-01-02", raw, h.service.Location())
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.AppErrorResponse(c, appErr)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
