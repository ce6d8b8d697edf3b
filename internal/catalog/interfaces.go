package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Reader is the read-only slice of the catalog served over HTTP. It may be
// backed by the cache; entity existence checks in other modules consume
// their own narrow interfaces against the plain repository instead.
type Reader interface {
	GetTicketType(ctx context.Context, id uuid.UUID) (*TicketType, error)
	GetActivePricingRules(ctx context.Context) ([]*DynamicPricingRule, error)
	ListTicketTypes(ctx context.Context) ([]*TicketType, error)
}
