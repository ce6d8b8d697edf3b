package ticketing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/pkg/database"
)

// ErrTicketNotFound is returned when a ticket does not exist
var ErrTicketNotFound = errors.New("ticket not found")

// Repository handles database operations for tickets
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new ticketing repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertTicket persists a new ticket
func (r *Repository) InsertTicket(ctx context.Context, t *Ticket) error {
	q := database.QuerierFromContext(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO tickets (id, passenger_id, ticket_type_id, purchased_at,
		                     valid_from, valid_to, price, payment_method, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.PassengerID, t.TicketTypeID, t.PurchasedAt,
		t.ValidFrom, t.ValidTo, t.Price, t.PaymentMethod, t.PaymentStatus)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	return nil
}

// GetTicket returns a ticket by ID
func (r *Repository) GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	q := database.QuerierFromContext(ctx, r.db)

	t := &Ticket{}
	err := q.QueryRow(ctx, `
		SELECT id, passenger_id, ticket_type_id, purchased_at, valid_from, valid_to,
		       price, payment_method, payment_status, created_at
		FROM tickets
		WHERE id = $1
	`, id).Scan(&t.ID, &t.PassengerID, &t.TicketTypeID, &t.PurchasedAt,
		&t.ValidFrom, &t.ValidTo, &t.Price, &t.PaymentMethod, &t.PaymentStatus, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticket %s: %w", id, ErrTicketNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return t, nil
}

// UpdatePaymentStatus sets a ticket's payment status
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tickets SET payment_status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s: %w", id, ErrTicketNotFound)
	}

	return nil
}

// ListTicketsForPassenger returns a passenger's tickets, newest first
func (r *Repository) ListTicketsForPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*Ticket, int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM tickets WHERE passenger_id = $1
	`, passengerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, passenger_id, ticket_type_id, purchased_at, valid_from, valid_to,
		       price, payment_method, payment_status, created_at
		FROM tickets
		WHERE passenger_id = $1
		ORDER BY purchased_at DESC
		LIMIT $2 OFFSET $3
	`, passengerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*Ticket, 0)
	for rows.Next() {
		t := &Ticket{}
		if err := rows.Scan(&t.ID, &t.PassengerID, &t.TicketTypeID, &t.PurchasedAt,
			&t.ValidFrom, &t.ValidTo, &t.Price, &t.PaymentMethod, &t.PaymentStatus, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	return tickets, total, rows.Err()
}
