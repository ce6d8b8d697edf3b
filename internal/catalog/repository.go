package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/pkg/database"
)

// ErrNotFound is returned when a reference entity does not exist
var ErrNotFound = errors.New("not found")

// Repository handles database reads for reference data
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new catalog repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetTicketType returns a ticket type by ID
func (r *Repository) GetTicketType(ctx context.Context, id uuid.UUID) (*TicketType, error) {
	q := database.QuerierFromContext(ctx, r.db)

	tt := &TicketType{}
	err := q.QueryRow(ctx, `
		SELECT id, name, base_price, validity_hours, is_transferable, created_at
		FROM ticket_types
		WHERE id = $1
	`, id).Scan(&tt.ID, &tt.Name, &tt.BasePrice, &tt.ValidityHours, &tt.IsTransferable, &tt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticket type %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}

	return tt, nil
}

// ListTicketTypes returns all ticket types
func (r *Repository) ListTicketTypes(ctx context.Context) ([]*TicketType, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, base_price, validity_hours, is_transferable, created_at
		FROM ticket_types
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	defer rows.Close()

	types := make([]*TicketType, 0)
	for rows.Next() {
		tt := &TicketType{}
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.BasePrice, &tt.ValidityHours, &tt.IsTransferable, &tt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket type: %w", err)
		}
		types = append(types, tt)
	}

	return types, rows.Err()
}

// GetActivePricingRules returns all active dynamic pricing rules
func (r *Repository) GetActivePricingRules(ctx context.Context) ([]*DynamicPricingRule, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       day_type, multiplier, is_active, created_at
		FROM dynamic_pricing_rules
		WHERE is_active = true
		ORDER BY multiplier DESC, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing rules: %w", err)
	}
	defer rows.Close()

	rules := make([]*DynamicPricingRule, 0)
	for rows.Next() {
		rule := &DynamicPricingRule{}
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.StartTime, &rule.EndTime,
			&rule.DayType, &rule.Multiplier, &rule.IsActive, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pricing rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// GetVehicle returns a vehicle by ID
func (r *Repository) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	q := database.QuerierFromContext(ctx, r.db)

	v := &Vehicle{}
	err := q.QueryRow(ctx, `
		SELECT id, vehicle_type_id, registration, status, created_at
		FROM vehicles
		WHERE id = $1
	`, id).Scan(&v.ID, &v.VehicleTypeID, &v.Registration, &v.Status, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return v, nil
}

// GetRoute returns a route by ID
func (r *Repository) GetRoute(ctx context.Context, id uuid.UUID) (*Route, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rt := &Route{}
	err := q.QueryRow(ctx, `
		SELECT id, short_name, long_name, is_active, created_at
		FROM routes
		WHERE id = $1
	`, id).Scan(&rt.ID, &rt.ShortName, &rt.LongName, &rt.IsActive, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("route %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return rt, nil
}

// GetScheduledVehicles returns the vehicles assigned to a route's schedules
func (r *Repository) GetScheduledVehicles(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT vehicle_id
		FROM schedules
		WHERE route_id = $1 AND is_active = true
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled vehicles: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpdateZoneBaseFare sets a zone's base fare and returns the previous value.
// Reference data writes are restricted to administrative flows; the fare
// engine itself only reads the catalog.
func (r *Repository) UpdateZoneBaseFare(ctx context.Context, id uuid.UUID, newFare float64) (oldFare float64, err error) {
	q := database.QuerierFromContext(ctx, r.db)

	err = q.QueryRow(ctx, `
		UPDATE zones
		SET base_fare = $2
		FROM (SELECT base_fare AS old_fare FROM zones WHERE id = $1 FOR UPDATE) prev
		WHERE id = $1
		RETURNING prev.old_fare
	`, id, newFare).Scan(&oldFare)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("zone %s: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to update zone base fare: %w", err)
	}

	return oldFare, nil
}
