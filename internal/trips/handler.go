package trips

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
)

// Handler handles HTTP requests for trip recording
type Handler struct {
	service *Service
}

// NewHandler creates a new trips handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RecordBoarding records a boarding event against a ticket
// POST /api/v1/trips
func (h *Handler) RecordBoarding(c *gin.Context) {
	var req RecordBoardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	boardingTime := time.Now()
	if req.BoardingTime != nil {
		boardingTime = *req.BoardingTime
	}

	trip, err := h.service.RecordBoarding(c.Request.Context(), req.TicketID, req.VehicleID, req.BoardingStopID, boardingTime)
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, trip)
}

// RecordAlighting completes a trip leg
// POST /api/v1/trips/:id/alight
func (h *Handler) RecordAlighting(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip id")
		return
	}

	var req RecordAlightingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	alightingTime := time.Now()
	if req.AlightingTime != nil {
		alightingTime = *req.AlightingTime
	}

	trip, err := h.service.RecordAlighting(c.Request.Context(), tripID, req.AlightingStopID, alightingTime)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, trip)
}

// GetTrip returns a trip record
// GET /api/v1/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, err := h.service.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, trip)
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.AppErrorResponse(c, appErr)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
