package pricing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
)

// Handler exposes read-only price quotes
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a new pricing quote handler
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// GetQuote resolves the effective price of a ticket type at a point in time.
// The quote is informational; issuance recomputes the price inside its own
// transaction.
// GET /api/v1/pricing/quote?ticket_type_id=...&at=RFC3339
func (h *Handler) GetQuote(c *gin.Context) {
	ticketTypeID, err := uuid.Parse(c.Query("ticket_type_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ticket_type_id")
		return
	}

	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid at, expected RFC3339")
			return
		}
	}

	quote, err := h.resolver.ResolvePrice(c.Request.Context(), ticketTypeID, at)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	common.SuccessResponse(c, quote)
}
