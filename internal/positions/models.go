package positions

import (
	"time"

	"github.com/google/uuid"
)

// VehiclePosition is one immutable GPS sample for a vehicle
type VehiclePosition struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VehicleID  uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	SpeedKmh   float64   `json:"speed_kmh" db:"speed_kmh"`
	Bearing    float64   `json:"bearing" db:"bearing"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RecordPositionRequest is the ingest payload
type RecordPositionRequest struct {
	VehicleID  uuid.UUID  `json:"vehicle_id" binding:"required"`
	Latitude   *float64   `json:"latitude" binding:"required,latitude"`
	Longitude  *float64   `json:"longitude" binding:"required,longitude"`
	SpeedKmh   float64    `json:"speed_kmh" binding:"gte=0"`
	Bearing    float64    `json:"bearing" binding:"gte=0,lte=360"`
	RecordedAt *time.Time `json:"recorded_at"`
}
