package catalog

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/middleware"
)

// Handler handles HTTP requests for reference catalog data
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListTicketTypes returns all ticket types
// GET /api/v1/ticket-types
func (h *Handler) ListTicketTypes(c *gin.Context) {
	types, err := h.service.ListTicketTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"ticket_types": types})
}

// GetTicketType returns one ticket type
// GET /api/v1/ticket-types/:id
func (h *Handler) GetTicketType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ticket type id")
		return
	}

	tt, err := h.service.GetTicketType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, tt)
}

// ListPricingRules returns the active dynamic pricing rules
// GET /api/v1/pricing/rules
func (h *Handler) ListPricingRules(c *gin.Context) {
	rules, err := h.service.ListPricingRules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"pricing_rules": rules})
}

// UpdateZoneFareRequest is the admin request to change a zone's base fare
type UpdateZoneFareRequest struct {
	BaseFare float64 `json:"base_fare" binding:"gte=0"`
}

// UpdateZoneBaseFare changes a zone's base fare (admin only)
// PATCH /api/v1/admin/zones/:id/base-fare
func (h *Handler) UpdateZoneBaseFare(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid zone id")
		return
	}

	var req UpdateZoneFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.UpdateZoneBaseFare(c.Request.Context(), zoneID, req.BaseFare, actorID.String(), time.Now()); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"zone_id": zoneID, "base_fare": req.BaseFare})
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.AppErrorResponse(c, appErr)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
