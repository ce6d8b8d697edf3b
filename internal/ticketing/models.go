package ticketing

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how a ticket was paid for
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCash   PaymentMethod = "cash"
)

// PaymentStatus is the payment state of a ticket
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Ticket is an issued ticket. All fields except the payment status are
// fixed at issuance; later pricing-rule changes never alter an issued
// ticket's price.
type Ticket struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	PassengerID   uuid.UUID     `json:"passenger_id" db:"passenger_id"`
	TicketTypeID  uuid.UUID     `json:"ticket_type_id" db:"ticket_type_id"`
	PurchasedAt   time.Time     `json:"purchased_at" db:"purchased_at"`
	ValidFrom     time.Time     `json:"valid_from" db:"valid_from"`
	ValidTo       time.Time     `json:"valid_to" db:"valid_to"`
	Price         float64       `json:"price" db:"price"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// CoversBoardingAt reports whether a boarding at t falls inside the
// ticket's validity window. Both window ends are inclusive.
func (t *Ticket) CoversBoardingAt(at time.Time) bool {
	return !at.Before(t.ValidFrom) && !at.After(t.ValidTo)
}

// TicketView is the caller-facing view of an issued ticket, joined with the
// ticket type name
type TicketView struct {
	TicketID      uuid.UUID     `json:"ticket_id"`
	TypeName      string        `json:"type_name"`
	ValidFrom     time.Time     `json:"valid_from"`
	ValidTo       time.Time     `json:"valid_to"`
	Price         float64       `json:"price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// IssueTicketRequest is the request body for issuing a ticket
type IssueTicketRequest struct {
	PassengerID   uuid.UUID `json:"passenger_id" binding:"required"`
	TicketTypeID  uuid.UUID `json:"ticket_type_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required,payment_method"`
}

// UpdatePaymentStatusRequest is the request body for a payment transition
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed refunded"`
}

// paymentTransitions lists the allowed payment-status transitions.
// Failed and refunded are terminal.
var paymentTransitions = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentStatusCompleted: {
		PaymentStatusFailed:   true,
		PaymentStatusRefunded: true,
	},
	PaymentStatusFailed:   {},
	PaymentStatusRefunded: {},
}

// CanTransition reports whether a payment status change is allowed
func CanTransition(from, to PaymentStatus) bool {
	return paymentTransitions[from][to]
}
