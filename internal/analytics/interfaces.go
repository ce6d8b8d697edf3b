package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RepositoryInterface defines the persistence operations for analytics
type RepositoryInterface interface {
	ListTripLegsForVehicles(ctx context.Context, vehicleIDs []uuid.UUID, from, to time.Time) ([]TripLeg, error)
	ListVehicleTripLegs(ctx context.Context, vehicleID uuid.UUID, from, to time.Time) ([]TripLeg, error)
	UpsertRouteAnalytics(ctx context.Context, row *DailyRouteAnalytics) error
	UpsertVehicleUtilization(ctx context.Context, row *DailyVehicleUtilization) error
}
