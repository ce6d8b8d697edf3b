// Package audit emits fare-change log entries to an external audit sink.
// The fare engine does not own the log; it only appends to it when a zone's
// base fare changes.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/pkg/database"
)

// FareChangeEntry records one base-fare mutation
type FareChangeEntry struct {
	ZoneID    uuid.UUID `json:"zone_id"`
	OldFare   float64   `json:"old_fare"`
	NewFare   float64   `json:"new_fare"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// Sink receives fare-change entries
type Sink interface {
	RecordFareChange(ctx context.Context, entry FareChangeEntry) error
}

// PostgresSink appends fare-change entries to the fare_change_log table.
// It honors an open transaction carried in the context so the entry commits
// atomically with the fare mutation it describes.
type PostgresSink struct {
	db *pgxpool.Pool
}

// NewPostgresSink creates a Postgres-backed audit sink
func NewPostgresSink(db *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{db: db}
}

// RecordFareChange appends one entry
func (s *PostgresSink) RecordFareChange(ctx context.Context, entry FareChangeEntry) error {
	q := database.QuerierFromContext(ctx, s.db)

	_, err := q.Exec(ctx, `
		INSERT INTO fare_change_log (zone_id, old_fare, new_fare, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ZoneID, entry.OldFare, entry.NewFare, entry.ChangedBy, entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("failed to record fare change: %w", err)
	}

	return nil
}
