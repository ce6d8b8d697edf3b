package catalog

import (
	"time"

	"github.com/google/uuid"
)

// DayType classifies a calendar day for pricing-rule matching
type DayType string

const (
	DayTypeWeekday DayType = "Weekday"
	DayTypeWeekend DayType = "Weekend"
	DayTypeHoliday DayType = "Holiday"
	DayTypeAll     DayType = "All"
)

// TicketType is immutable reference data describing a purchasable ticket
type TicketType struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	BasePrice      float64   `json:"base_price" db:"base_price"`
	ValidityHours  int       `json:"validity_hours" db:"validity_hours"`
	IsTransferable bool      `json:"is_transferable" db:"is_transferable"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// DynamicPricingRule scopes a price multiplier to a time-of-day interval and
// a day type. The interval [StartTime, EndTime) may wrap past midnight.
type DynamicPricingRule struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	StartTime  string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime    string    `json:"end_time" db:"end_time"`     // HH:MM
	DayType    DayType   `json:"day_type" db:"day_type"`
	Multiplier float64   `json:"multiplier" db:"multiplier"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Vehicle is a fleet vehicle
type Vehicle struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	VehicleTypeID *uuid.UUID `json:"vehicle_type_id,omitempty" db:"vehicle_type_id"`
	Registration  string     `json:"registration" db:"registration"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Route is a transit route
type Route struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ShortName string    `json:"short_name" db:"short_name"`
	LongName  string    `json:"long_name" db:"long_name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Stop is a transit stop
type Stop struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ZoneID    *uuid.UUID `json:"zone_id,omitempty" db:"zone_id"`
	Name      string     `json:"name" db:"name"`
	Latitude  float64    `json:"latitude" db:"latitude"`
	Longitude float64    `json:"longitude" db:"longitude"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Zone is a fare zone with a base fare
type Zone struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	BaseFare  float64   `json:"base_fare" db:"base_fare"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
