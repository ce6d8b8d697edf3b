package positions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/database"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

var positionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "vehicle_positions_recorded_total",
	Help: "Position samples accepted and stored",
})

// Service handles position ingest business logic
type Service struct {
	repo      RepositoryInterface
	catalog   CatalogReader
	tx        database.Transactor
	publisher Publisher
}

// NewService creates a new positions service
func NewService(repo RepositoryInterface, cat CatalogReader, tx database.Transactor, pub Publisher) *Service {
	return &Service{repo: repo, catalog: cat, tx: tx, publisher: pub}
}

// RecordPosition validates the vehicle and appends one immutable sample.
// Publishing to NATS happens after commit and never fails the request.
func (s *Service) RecordPosition(ctx context.Context, req *RecordPositionRequest) (*VehiclePosition, error) {
	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	pos := &VehiclePosition{
		VehicleID:  req.VehicleID,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		SpeedKmh:   req.SpeedKmh,
		Bearing:    req.Bearing,
		RecordedAt: recordedAt,
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.catalog.GetVehicle(txCtx, req.VehicleID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return common.NewNotFoundError("vehicle not found", err)
			}
			return common.NewInternalServerError("failed to look up vehicle")
		}
		if err := s.repo.InsertPosition(txCtx, pos); err != nil {
			return common.NewInternalServerError("failed to record position")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	positionsRecorded.Inc()

	if err := s.publisher.PublishPosition(pos); err != nil {
		logger.WithContext(ctx).Warn("position stored but not published",
			zap.String("vehicle_id", pos.VehicleID.String()),
			zap.Error(err),
		)
	}

	return pos, nil
}

// ListPositions returns a page of a vehicle's samples, newest first
func (s *Service) ListPositions(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]VehiclePosition, int64, error) {
	if _, err := s.catalog.GetVehicle(ctx, vehicleID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, 0, common.NewNotFoundError("vehicle not found", err)
		}
		return nil, 0, common.NewInternalServerError("failed to look up vehicle")
	}
	list, total, err := s.repo.ListPositions(ctx, vehicleID, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalServerError("failed to list positions")
	}
	return list, total, nil
}
