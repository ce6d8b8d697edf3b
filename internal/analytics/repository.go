package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/pkg/database"
)

// Repository handles database operations for analytics
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new analytics repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListTripLegsForVehicles returns trip legs boarded on any of the given
// vehicles with boarding times in [from, to). An empty vehicle set matches
// no legs.
func (r *Repository) ListTripLegsForVehicles(ctx context.Context, vehicleIDs []uuid.UUID, from, to time.Time) ([]TripLeg, error) {
	if len(vehicleIDs) == 0 {
		return []TripLeg{}, nil
	}

	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT tr.id, tr.boarding_time, tr.alighting_time, tr.fare_charged
		FROM trip_records tr
		WHERE tr.vehicle_id = ANY($1)
		  AND tr.boarding_time >= $2
		  AND tr.boarding_time < $3
	`, vehicleIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip legs for vehicles: %w", err)
	}
	defer rows.Close()

	return scanLegs(rows)
}

// ListVehicleTripLegs returns trip legs for one vehicle with boarding times
// in [from, to)
func (r *Repository) ListVehicleTripLegs(ctx context.Context, vehicleID uuid.UUID, from, to time.Time) ([]TripLeg, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT tr.id, tr.boarding_time, tr.alighting_time, tr.fare_charged
		FROM trip_records tr
		WHERE tr.vehicle_id = $1
		  AND tr.boarding_time >= $2
		  AND tr.boarding_time < $3
	`, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle trip legs: %w", err)
	}
	defer rows.Close()

	return scanLegs(rows)
}

func scanLegs(rows pgx.Rows) ([]TripLeg, error) {
	legs := make([]TripLeg, 0)
	for rows.Next() {
		var id uuid.UUID
		var leg TripLeg
		if err := rows.Scan(&id, &leg.BoardingTime, &leg.AlightingTime, &leg.FareCharged); err != nil {
			return nil, fmt.Errorf("failed to scan trip leg: %w", err)
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

// UpsertRouteAnalytics inserts or fully overwrites the daily route summary.
// Recomputation replaces, never appends.
func (r *Repository) UpsertRouteAnalytics(ctx context.Context, row *DailyRouteAnalytics) error {
	q := database.QuerierFromContext(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO daily_route_analytics
			(route_id, analysis_date, total_passengers, average_travel_time_minutes, peak_hour, revenue, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (route_id, analysis_date) DO UPDATE SET
			total_passengers = EXCLUDED.total_passengers,
			average_travel_time_minutes = EXCLUDED.average_travel_time_minutes,
			peak_hour = EXCLUDED.peak_hour,
			revenue = EXCLUDED.revenue,
			computed_at = EXCLUDED.computed_at
	`, row.RouteID, row.AnalysisDate, row.TotalPassengers, row.AverageTravelTimeMinutes,
		row.PeakHour, row.Revenue, row.ComputedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert route analytics: %w", err)
	}

	return nil
}

// UpsertVehicleUtilization inserts or fully overwrites the daily vehicle summary
func (r *Repository) UpsertVehicleUtilization(ctx context.Context, row *DailyVehicleUtilization) error {
	q := database.QuerierFromContext(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO daily_vehicle_utilization
			(vehicle_id, analysis_date, total_passengers, average_travel_time_minutes, peak_hour, revenue, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (vehicle_id, analysis_date) DO UPDATE SET
			total_passengers = EXCLUDED.total_passengers,
			average_travel_time_minutes = EXCLUDED.average_travel_time_minutes,
			peak_hour = EXCLUDED.peak_hour,
			revenue = EXCLUDED.revenue,
			computed_at = EXCLUDED.computed_at
	`, row.VehicleID, row.AnalysisDate, row.TotalPassengers, row.AverageTravelTimeMinutes,
		row.PeakHour, row.Revenue, row.ComputedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle utilization: %w", err)
	}

	return nil
}
