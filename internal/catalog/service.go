package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/audit"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/database"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

// Service exposes catalog reads and the administrative base-fare mutation
type Service struct {
	reader Reader
	repo   *Repository
	tx     database.Transactor
	sink   audit.Sink
}

// NewService creates a new catalog service. reader may be a cached wrapper
// around repo; writes always go through repo inside a transaction.
func NewService(reader Reader, repo *Repository, tx database.Transactor, sink audit.Sink) *Service {
	return &Service{reader: reader, repo: repo, tx: tx, sink: sink}
}

// GetTicketType returns a ticket type by ID
func (s *Service) GetTicketType(ctx context.Context, id uuid.UUID) (*TicketType, error) {
	tt, err := s.reader.GetTicketType(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, common.NewNotFoundError("ticket type not found", err)
		}
		return nil, common.NewInternalServerError("failed to get ticket type")
	}
	return tt, nil
}

// ListTicketTypes returns all ticket types
func (s *Service) ListTicketTypes(ctx context.Context) ([]*TicketType, error) {
	types, err := s.reader.ListTicketTypes(ctx)
	if err != nil {
		return nil, common.NewInternalServerError("failed to list ticket types")
	}
	return types, nil
}

// ListPricingRules returns the active dynamic pricing rules
func (s *Service) ListPricingRules(ctx context.Context) ([]*DynamicPricingRule, error) {
	rules, err := s.reader.GetActivePricingRules(ctx)
	if err != nil {
		return nil, common.NewInternalServerError("failed to list pricing rules")
	}
	return rules, nil
}

// UpdateZoneBaseFare changes a zone's base fare and emits a fare-change
// entry to the audit sink within the same transaction.
func (s *Service) UpdateZoneBaseFare(ctx context.Context, zoneID uuid.UUID, newFare float64, actor string, now time.Time) error {
	if newFare < 0 {
		return common.NewValidationError("base fare must be non-negative", nil)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		oldFare, err := s.repo.UpdateZoneBaseFare(ctx, zoneID, newFare)
		if err != nil {
			return err
		}
		return s.sink.RecordFareChange(ctx, audit.FareChangeEntry{
			ZoneID:    zoneID,
			OldFare:   oldFare,
			NewFare:   newFare,
			ChangedBy: actor,
			ChangedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return common.NewNotFoundError("zone not found", err)
		}
		return common.NewInternalServerError("failed to update zone base fare")
	}

	logger.WithContext(ctx).Info("Zone base fare updated",
		zap.String("zone_id", zoneID.String()),
		zap.Float64("new_fare", newFare),
		zap.String("actor", actor),
	)
	return nil
}
