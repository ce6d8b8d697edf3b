package positions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/pkg/database"
)

// Repository handles database operations for vehicle positions
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new positions repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertPosition appends one position sample. Rows are never updated or deleted.
func (r *Repository) InsertPosition(ctx context.Context, pos *VehiclePosition) error {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO vehicle_positions (vehicle_id, latitude, longitude, speed_kmh, bearing, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := q.QueryRow(ctx, query,
		pos.VehicleID, pos.Latitude, pos.Longitude, pos.SpeedKmh, pos.Bearing, pos.RecordedAt,
	).Scan(&pos.ID, &pos.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle position: %w", err)
	}

	return nil
}

// ListPositions returns a vehicle's samples, newest first
func (r *Repository) ListPositions(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]VehiclePosition, int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM vehicle_positions WHERE vehicle_id = $1`
	if err := q.QueryRow(ctx, countQuery, vehicleID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicle positions: %w", err)
	}

	query := `
		SELECT id, vehicle_id, latitude, longitude, speed_kmh, bearing, recorded_at, created_at
		FROM vehicle_positions
		WHERE vehicle_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, vehicleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicle positions: %w", err)
	}
	defer rows.Close()

	var list []VehiclePosition
	for rows.Next() {
		var pos VehiclePosition
		if err := rows.Scan(
			&pos.ID, &pos.VehicleID, &pos.Latitude, &pos.Longitude,
			&pos.SpeedKmh, &pos.Bearing, &pos.RecordedAt, &pos.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle position: %w", err)
		}
		list = append(list, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read vehicle positions: %w", err)
	}

	return list, total, nil
}
