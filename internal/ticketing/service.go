package ticketing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/database"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

var ticketsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tickets_issued_total",
		Help: "Total number of tickets issued",
	},
	[]string{"ticket_type"},
)

// Service handles ticket issuance and payment-status transitions
type Service struct {
	repo     RepositoryInterface
	resolver PriceResolver
	tx       database.Transactor
}

// NewService creates a new ticketing service
func NewService(repo RepositoryInterface, resolver PriceResolver, tx database.Transactor) *Service {
	return &Service{repo: repo, resolver: resolver, tx: tx}
}

// IssueTicket creates a ticket: it resolves the effective price at `now`,
// derives the validity window from the ticket type, and persists the ticket
// in a single transaction. The price is fixed at issuance.
func (s *Service) IssueTicket(ctx context.Context, passengerID, ticketTypeID uuid.UUID, method PaymentMethod, now time.Time) (*TicketView, error) {
	var view *TicketView

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.resolver.ResolvePrice(ctx, ticketTypeID, now)
		if err != nil {
			return err
		}

		ticket := &Ticket{
			ID:            uuid.New(),
			PassengerID:   passengerID,
			TicketTypeID:  ticketTypeID,
			PurchasedAt:   now,
			ValidFrom:     now,
			ValidTo:       now.Add(time.Duration(quote.ValidityHours) * time.Hour),
			Price:         quote.FinalPrice,
			PaymentMethod: method,
			PaymentStatus: PaymentStatusCompleted,
		}

		if err := s.repo.InsertTicket(ctx, ticket); err != nil {
			return err
		}

		view = &TicketView{
			TicketID:      ticket.ID,
			TypeName:      quote.TypeName,
			ValidFrom:     ticket.ValidFrom,
			ValidTo:       ticket.ValidTo,
			Price:         ticket.Price,
			PaymentMethod: ticket.PaymentMethod,
			PaymentStatus: ticket.PaymentStatus,
		}
		return nil
	})
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, common.NewInternalServerError("failed to issue ticket")
	}

	ticketsIssuedTotal.WithLabelValues(view.TypeName).Inc()
	logger.WithContext(ctx).Info("Ticket issued",
		zap.String("ticket_id", view.TicketID.String()),
		zap.String("type", view.TypeName),
		zap.Float64("price", view.Price),
	)

	return view, nil
}

// GetTicket returns a ticket by ID
func (s *Service) GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	t, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return nil, common.NewNotFoundError("ticket not found", err)
		}
		return nil, common.NewInternalServerError("failed to get ticket")
	}
	return t, nil
}

// ListTickets returns a passenger's tickets
func (s *Service) ListTickets(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*Ticket, int64, error) {
	tickets, total, err := s.repo.ListTicketsForPassenger(ctx, passengerID, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalServerError("failed to list tickets")
	}
	return tickets, total, nil
}

// SetPaymentStatus applies a payment-status transition. Failed and refunded
// are terminal states.
func (s *Service) SetPaymentStatus(ctx context.Context, id uuid.UUID, to PaymentStatus) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ticket, err := s.repo.GetTicket(ctx, id)
		if err != nil {
			return err
		}
		if !CanTransition(ticket.PaymentStatus, to) {
			return common.NewInvalidStateError("payment status transition not allowed", nil)
		}
		return s.repo.UpdatePaymentStatus(ctx, id, to)
	})
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			return appErr
		}
		if errors.Is(err, ErrTicketNotFound) {
			return common.NewNotFoundError("ticket not found", err)
		}
		return common.NewInternalServerError("failed to update payment status")
	}
	return nil
}
