package ticketing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/pagination"
)

// Handler handles HTTP requests for ticketing
type Handler struct {
	service *Service
}

// NewHandler creates a new ticketing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// IssueTicket issues a new ticket
// POST /api/v1/tickets
func (h *Handler) IssueTicket(c *gin.Context) {
	var req IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.IssueTicket(c.Request.Context(), req.PassengerID, req.TicketTypeID,
		PaymentMethod(req.PaymentMethod), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	common.CreatedResponse(c, view)
}

// GetTicket returns a ticket by ID
// GET /api/v1/tickets/:id
func (h *Handler) GetTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ticket id")
		return
	}

	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, ticket)
}

// ListTickets returns a passenger's tickets
// GET /api/v1/passengers/:id/tickets?limit=20&offset=0
func (h *Handler) ListTickets(c *gin.Context) {
	passengerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid passenger id")
		return
	}

	params := pagination.ParseParams(c)
	tickets, total, err := h.service.ListTickets(c.Request.Context(), passengerID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := pagination.BuildMeta(params.Limit, params.Offset, total)
	common.SuccessResponseWithMeta(c, gin.H{"tickets": tickets}, meta)
}

// SetPaymentStatus applies a payment-status transition
// PATCH /api/v1/tickets/:id/payment
func (h *Handler) SetPaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ticket id")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetPaymentStatus(c.Request.Context(), id, PaymentStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"ticket_id": id, "payment_status": req.Status})
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.AppErrorResponse(c, appErr)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}
