package positions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/pagination"
)

// Handler handles HTTP requests for position ingest
type Handler struct {
	service *Service
}

// NewHandler creates a new positions handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RecordPosition appends one position sample
// POST /api/v1/positions
func (h *Handler) RecordPosition(c *gin.Context) {
	var req RecordPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pos, err := h.service.RecordPosition(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, pos)
}

// ListPositions returns a vehicle's samples, newest first
// GET /api/v1/vehicles/:id/positions
func (h *Handler) ListPositions(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	params := pagination.ParseParams(c)

	list, total, err := h.service.ListPositions(c.Request.Context(), vehicleID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponseWithMeta(c, list, pagination.BuildMeta(params.Limit, params.Offset, total))
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.AppErrorResponse(c, appErr)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
