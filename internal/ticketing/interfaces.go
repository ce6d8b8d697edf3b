package ticketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/pricing"
)

// RepositoryInterface defines the persistence operations for tickets
type RepositoryInterface interface {
	InsertTicket(ctx context.Context, t *Ticket) error
	GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error
	ListTicketsForPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*Ticket, int64, error)
}

// PriceResolver resolves the effective price of a ticket type at a time
type PriceResolver interface {
	ResolvePrice(ctx context.Context, ticketTypeID uuid.UUID, at time.Time) (*pricing.Quote, error)
}
