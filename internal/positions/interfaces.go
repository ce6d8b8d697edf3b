package positions

import (
	"context"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
)

// RepositoryInterface defines position persistence operations
type RepositoryInterface interface {
	InsertPosition(ctx context.Context, pos *VehiclePosition) error
	ListPositions(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]VehiclePosition, int64, error)
}

// CatalogReader looks up the vehicle a position belongs to
type CatalogReader interface {
	GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error)
}

// Publisher fans positions out to downstream consumers
type Publisher interface {
	PublishPosition(pos *VehiclePosition) error
}
