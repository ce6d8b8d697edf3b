package trips

import (
	"context"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/internal/ticketing"
)

// RepositoryInterface defines the persistence operations for trip records
type RepositoryInterface interface {
	InsertTrip(ctx context.Context, t *TripRecord) error
	GetTrip(ctx context.Context, id uuid.UUID) (*TripRecord, error)
	CompleteTrip(ctx context.Context, t *TripRecord) error
}

// TicketReader reads issued tickets
type TicketReader interface {
	GetTicket(ctx context.Context, id uuid.UUID) (*ticketing.Ticket, error)
}

// CatalogReader is the slice of the catalog the recorder reads
type CatalogReader interface {
	GetTicketType(ctx context.Context, id uuid.UUID) (*catalog.TicketType, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error)
}
