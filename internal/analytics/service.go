package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/internal/pricing"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/database"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

// CatalogReader is the slice of the catalog the aggregator reads
type CatalogReader interface {
	GetRoute(ctx context.Context, id uuid.UUID) (*catalog.Route, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error)
	GetScheduledVehicles(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error)
}

// Service recomputes daily route and vehicle summaries from trip records.
// Aggregation runs inside one transaction so the upserted row reflects a
// consistent snapshot of the trips committed when its read began.
type Service struct {
	repo    RepositoryInterface
	catalog CatalogReader
	tx      database.Transactor
	loc     *time.Location
}

// NewService creates a new analytics service. loc is the reporting time
// zone used to bound calendar days.
func NewService(repo RepositoryInterface, cat CatalogReader, tx database.Transactor, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, catalog: cat, tx: tx, loc: loc}
}

// Location returns the reporting time zone
func (s *Service) Location() *time.Location {
	return s.loc
}

// ComputeRouteStatistics aggregates the route's trip records for one
// calendar day and upserts the daily summary. An empty match set yields a
// zero row, not an error.
func (s *Service) ComputeRouteStatistics(ctx context.Context, routeID uuid.UUID, date time.Time) (*DailyRouteAnalytics, error) {
	if _, err := s.catalog.GetRoute(ctx, routeID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, common.NewNotFoundError("route not found", err)
		}
		return nil, common.NewInternalServerError("failed to compute route statistics")
	}

	from, to := s.dayBounds(date)

	var row *DailyRouteAnalytics
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		vehicleIDs, err := s.catalog.GetScheduledVehicles(ctx, routeID)
		if err != nil {
			return err
		}

		legs, err := s.repo.ListTripLegsForVehicles(ctx, vehicleIDs, from, to)
		if err != nil {
			return err
		}

		sum := s.aggregate(legs)
		row = &DailyRouteAnalytics{
			RouteID:                  routeID,
			AnalysisDate:             from.Format("2006-01-02"),
			TotalPassengers:          sum.TotalPassengers,
			AverageTravelTimeMinutes: sum.AverageTravelTimeMinutes,
			PeakHour:                 sum.PeakHour,
			Revenue:                  sum.Revenue,
			ComputedAt:               time.Now(),
		}
		return s.repo.UpsertRouteAnalytics(ctx, row)
	})
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			return nil, appErr
		}
		logger.WithContext(ctx).Error("Failed to compute route statistics",
			zap.String("route_id", routeID.String()), zap.Error(err))
		return nil, common.NewInternalServerError("failed to compute route statistics")
	}

	logger.WithContext(ctx).Info("Route statistics recomputed",
		zap.String("route_id", routeID.String()),
		zap.String("date", row.AnalysisDate),
		zap.Int("total_passengers", row.TotalPassengers),
	)
	return row, nil
}

// ComputeVehicleUtilization aggregates one vehicle's trip records for one
// calendar day and upserts the daily summary
func (s *Service) ComputeVehicleUtilization(ctx context.Context, vehicleID uuid.UUID, date time.Time) (*DailyVehicleUtilization, error) {
	if _, err := s.catalog.GetVehicle(ctx, vehicleID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, common.NewNotFoundError("vehicle not found", err)
		}
		return nil, common.NewInternalServerError("failed to compute vehicle utilization")
	}

	from, to := s.dayBounds(date)

	var row *DailyVehicleUtilization
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		legs, err := s.repo.ListVehicleTripLegs(ctx, vehicleID, from, to)
		if err != nil {
			return err
		}

		sum := s.aggregate(legs)
		row = &DailyVehicleUtilization{
			VehicleID:                vehicleID,
			AnalysisDate:             from.Format("2006-01-02"),
			TotalPassengers:          sum.TotalPassengers,
			AverageTravelTimeMinutes: sum.AverageTravelTimeMinutes,
			PeakHour:                 sum.PeakHour,
			Revenue:                  sum.Revenue,
			ComputedAt:               time.Now(),
		}
		return s.repo.UpsertVehicleUtilization(ctx, row)
	})
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			return nil, appErr
		}
		logger.WithContext(ctx).Error("Failed to compute vehicle utilization",
			zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
		return nil, common.NewInternalServerError("failed to compute vehicle utilization")
	}

	return row, nil
}

// dayBounds returns the [midnight, next midnight) window of date's calendar
// day in the reporting time zone
func (s *Service) dayBounds(date time.Time) (time.Time, time.Time) {
	d := date.In(s.loc)
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
	to := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, s.loc)
	return from, to
}

// aggregate computes the daily summary of a set of trip legs. Incomplete
// legs count toward totalPassengers but are excluded from the travel-time
// average; null fares count as zero; the peak hour is the boarding
// hour-of-day with the most legs, smallest hour winning ties.
func (s *Service) aggregate(legs []TripLeg) summary {
	sum := summary{TotalPassengers: len(legs)}
	if len(legs) == 0 {
		return sum
	}

	var travelTotal float64
	var travelCount int
	var hourCounts [24]int

	for _, leg := range legs {
		hourCounts[leg.BoardingTime.In(s.loc).Hour()]++
		if leg.AlightingTime != nil {
			travelTotal += leg.AlightingTime.Sub(leg.BoardingTime).Minutes()
			travelCount++
		}
		if leg.FareCharged != nil {
			sum.Revenue += *leg.FareCharged
		}
	}

	if travelCount > 0 {
		avg := travelTotal / float64(travelCount)
		sum.AverageTravelTimeMinutes = &avg
	}

	peak, peakCount := 0, 0
	for h := 0; h < 24; h++ {
		if hourCounts[h] > peakCount {
			peak, peakCount = h, hourCounts[h]
		}
	}
	sum.PeakHour = &peak

	sum.Revenue = pricing.RoundCurrency(sum.Revenue)
	return sum
}
