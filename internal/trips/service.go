package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/internal/ticketing"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/database"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

var tripLegsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "trip_legs_recorded_total",
		Help: "Total number of trip legs recorded",
	},
)

// Service records trip legs against issued tickets
type Service struct {
	repo    RepositoryInterface
	tickets TicketReader
	catalog CatalogReader
	tx      database.Transactor
}

// NewService creates a new trips service
func NewService(repo RepositoryInterface, tickets TicketReader, cat CatalogReader, tx database.Transactor) *Service {
	return &Service{repo: repo, tickets: tickets, catalog: cat, tx: tx}
}

// RecordBoarding attaches a boarding event to a ticket and vehicle. The
// boarding time must fall inside the ticket's validity window, inclusive on
// both ends. The fare charged for the leg follows the per-ticket-type rule
// table: multi-ride passes charge nothing per leg, point-to-point types
// charge the issued price.
func (s *Service) RecordBoarding(ctx context.Context, ticketID, vehicleID uuid.UUID, boardingStopID *uuid.UUID, boardingTime time.Time) (*TripRecord, error) {
	var trip *TripRecord

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ticket, err := s.tickets.GetTicket(ctx, ticketID)
		if err != nil {
			if errors.Is(err, ticketing.ErrTicketNotFound) {
				return common.NewNotFoundError("ticket not found", err)
			}
			return err
		}

		if !ticket.CoversBoardingAt(boardingTime) {
			return common.NewInvalidStateError("ticket is not valid at boarding time", nil)
		}

		if _, err := s.catalog.GetVehicle(ctx, vehicleID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return common.NewNotFoundError("vehicle not found", err)
			}
			return err
		}

		tt, err := s.catalog.GetTicketType(ctx, ticket.TicketTypeID)
		if err != nil {
			return err
		}

		trip = &TripRecord{
			ID:             uuid.New(),
			TicketID:       ticketID,
			VehicleID:      vehicleID,
			BoardingStopID: boardingStopID,
			BoardingTime:   boardingTime,
			FareCharged:    LegFare(tt.Name, ticket.Price),
		}
		return s.repo.InsertTrip(ctx, trip)
	})
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, common.NewInternalServerError("failed to record boarding")
	}

	tripLegsRecordedTotal.Inc()
	logger.WithContext(ctx).Info("Boarding recorded",
		zap.String("trip_id", trip.ID.String()),
		zap.String("ticket_id", ticketID.String()),
		zap.Float64("fare_charged", trip.FareCharged),
	)

	return trip, nil
}

// RecordAlighting completes a trip leg. Completing an already-completed leg
// fails with an invalid-state error; the alighting time must not precede the
// boarding time.
func (s *Service) RecordAlighting(ctx context.Context, tripID uuid.UUID, alightingStopID *uuid.UUID, alightingTime time.Time) (*TripRecord, error) {
	var trip *TripRecord

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		trip, err = s.repo.GetTrip(ctx, tripID)
		if err != nil {
			if errors.Is(err, ErrTripNotFound) {
				return common.NewNotFoundError("trip not found", err)
			}
			return err
		}

		if trip.IsCompleted() {
			return common.NewInvalidStateError("trip already completed", nil)
		}
		if alightingTime.Before(trip.BoardingTime) {
			return common.NewValidationError("alighting time precedes boarding time", nil)
		}

		trip.AlightingStopID = alightingStopID
		trip.AlightingTime = &alightingTime
		return s.repo.CompleteTrip(ctx, trip)
	})
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, common.NewInternalServerError("failed to record alighting")
	}

	logger.WithContext(ctx).Info("Alighting recorded", zap.String("trip_id", trip.ID.String()))
	return trip, nil
}

// GetTrip returns a trip record by ID
func (s *Service) GetTrip(ctx context.Context, id uuid.UUID) (*TripRecord, error) {
	t, err := s.repo.GetTrip(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, common.NewNotFoundError("trip not found", err)
		}
		return nil, common.NewInternalServerError("failed to get trip")
	}
	return t, nil
}
