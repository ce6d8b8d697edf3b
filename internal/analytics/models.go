package analytics

import (
	"time"

	"github.com/google/uuid"
)

// TripLeg is the slice of a trip record the aggregator consumes
type TripLeg struct {
	BoardingTime  time.Time  `db:"boarding_time"`
	AlightingTime *time.Time `db:"alighting_time"`
	FareCharged   *float64   `db:"fare_charged"`
}

// DailyRouteAnalytics is the per-route daily summary, recomputed
// idempotently and keyed uniquely by (route, date)
type DailyRouteAnalytics struct {
	ID                       uuid.UUID `json:"id" db:"id"`
	RouteID                  uuid.UUID `json:"route_id" db:"route_id"`
	AnalysisDate             string    `json:"analysis_date" db:"analysis_date"` // YYYY-MM-DD
	TotalPassengers          int       `json:"total_passengers" db:"total_passengers"`
	AverageTravelTimeMinutes *float64  `json:"average_travel_time_minutes,omitempty" db:"average_travel_time_minutes"`
	PeakHour                 *int      `json:"peak_hour,omitempty" db:"peak_hour"`
	Revenue                  float64   `json:"revenue" db:"revenue"`
	ComputedAt               time.Time `json:"computed_at" db:"computed_at"`
}

// DailyVehicleUtilization is the per-vehicle daily summary, keyed uniquely
// by (vehicle, date)
type DailyVehicleUtilization struct {
	ID                       uuid.UUID `json:"id" db:"id"`
	VehicleID                uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	AnalysisDate             string    `json:"analysis_date" db:"analysis_date"`
	TotalPassengers          int       `json:"total_passengers" db:"total_passengers"`
	AverageTravelTimeMinutes *float64  `json:"average_travel_time_minutes,omitempty" db:"average_travel_time_minutes"`
	PeakHour                 *int      `json:"peak_hour,omitempty" db:"peak_hour"`
	Revenue                  float64   `json:"revenue" db:"revenue"`
	ComputedAt               time.Time `json:"computed_at" db:"computed_at"`
}

// summary holds the aggregate values shared by both daily summaries
type summary struct {
	TotalPassengers          int
	AverageTravelTimeMinutes *float64
	PeakHour                 *int
	Revenue                  float64
}
