package trips

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/pkg/database"
)

// ErrTripNotFound is returned when a trip record does not exist
var ErrTripNotFound = errors.New("trip not found")

// Repository handles database operations for trip records
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new trips repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertTrip persists a new trip leg
func (r *Repository) InsertTrip(ctx context.Context, t *TripRecord) error {
	q := database.QuerierFromContext(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO trip_records (id, ticket_id, vehicle_id, boarding_stop_id, boarding_time, fare_charged)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.TicketID, t.VehicleID, t.BoardingStopID, t.BoardingTime, t.FareCharged)
	if err != nil {
		return fmt.Errorf("failed to insert trip record: %w", err)
	}

	return nil
}

// GetTrip returns a trip record by ID
func (r *Repository) GetTrip(ctx context.Context, id uuid.UUID) (*TripRecord, error) {
	q := database.QuerierFromContext(ctx, r.db)

	t := &TripRecord{}
	err := q.QueryRow(ctx, `
		SELECT id, ticket_id, vehicle_id, boarding_stop_id, alighting_stop_id,
		       boarding_time, alighting_time, COALESCE(fare_charged, 0), created_at
		FROM trip_records
		WHERE id = $1
	`, id).Scan(&t.ID, &t.TicketID, &t.VehicleID, &t.BoardingStopID, &t.AlightingStopID,
		&t.BoardingTime, &t.AlightingTime, &t.FareCharged, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("trip %s: %w", id, ErrTripNotFound)
		}
		return nil, fmt.Errorf("failed to get trip record: %w", err)
	}

	return t, nil
}

// CompleteTrip sets the alighting stop and time on a trip record
func (r *Repository) CompleteTrip(ctx context.Context, t *TripRecord) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE trip_records
		SET alighting_stop_id = $2, alighting_time = $3
		WHERE id = $1 AND alighting_time IS NULL
	`, t.ID, t.AlightingStopID, t.AlightingTime)
	if err != nil {
		return fmt.Errorf("failed to complete trip record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %s: %w", t.ID, ErrTripNotFound)
	}

	return nil
}
