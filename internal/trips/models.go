package trips

import (
	"time"

	"github.com/google/uuid"
)

// TripRecord is one boarding-to-alighting leg recorded against a ticket.
// A ticket may cover multiple legs within its validity window.
type TripRecord struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	TicketID        uuid.UUID  `json:"ticket_id" db:"ticket_id"`
	VehicleID       uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	BoardingStopID  *uuid.UUID `json:"boarding_stop_id,omitempty" db:"boarding_stop_id"`
	AlightingStopID *uuid.UUID `json:"alighting_stop_id,omitempty" db:"alighting_stop_id"`
	BoardingTime    time.Time  `json:"boarding_time" db:"boarding_time"`
	AlightingTime   *time.Time `json:"alighting_time,omitempty" db:"alighting_time"`
	FareCharged     float64    `json:"fare_charged" db:"fare_charged"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// IsCompleted reports whether the leg has an observed alighting
func (t *TripRecord) IsCompleted() bool {
	return t.AlightingTime != nil
}

// LegFarePolicy decides what a single leg costs against an issued ticket
type LegFarePolicy int

const (
	// FareIncluded means all legs are covered by the price paid at issuance
	FareIncluded LegFarePolicy = iota
	// FarePerLeg means each leg charges the ticket's issued price
	FarePerLeg
)

// legFarePolicies is the explicit per-ticket-type fare rule table. Multi-ride
// passes are fully paid at issuance; point-to-point types charge per leg.
// Unknown ticket types fall back to charging per leg.
var legFarePolicies = map[string]LegFarePolicy{
	"Single Ride":     FarePerLeg,
	"Airport Express": FarePerLeg,
	"Day Pass":        FareIncluded,
	"Weekly Pass":     FareIncluded,
	"Monthly Pass":    FareIncluded,
}

// LegFare returns the fare charged for one leg of the given ticket type at
// the given issued price
func LegFare(ticketTypeName string, issuedPrice float64) float64 {
	policy, ok := legFarePolicies[ticketTypeName]
	if !ok {
		policy = FarePerLeg
	}
	if policy == FareIncluded {
		return 0
	}
	return issuedPrice
}

// RecordBoardingRequest is the request body for recording a boarding
type RecordBoardingRequest struct {
	TicketID       uuid.UUID  `json:"ticket_id" binding:"required"`
	VehicleID      uuid.UUID  `json:"vehicle_id" binding:"required"`
	BoardingStopID *uuid.UUID `json:"boarding_stop_id,omitempty"`
	BoardingTime   *time.Time `json:"boarding_time,omitempty"`
}

// RecordAlightingRequest is the request body for recording an alighting
type RecordAlightingRequest struct {
	AlightingStopID *uuid.UUID `json:"alighting_stop_id,omitempty"`
	AlightingTime   *time.Time `json:"alighting_time,omitempty"`
}
