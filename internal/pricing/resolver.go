package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/pkg/common"
)

// Catalog is the slice of the reference catalog the resolver reads
type Catalog interface {
	GetTicketType(ctx context.Context, id uuid.UUID) (*catalog.TicketType, error)
	GetActivePricingRules(ctx context.Context) ([]*catalog.DynamicPricingRule, error)
}

// Quote is the result of resolving a ticket price at a point in time
type Quote struct {
	TicketTypeID  uuid.UUID       `json:"ticket_type_id"`
	TypeName      string          `json:"type_name"`
	ValidityHours int             `json:"validity_hours"`
	BasePrice     float64         `json:"base_price"`
	Multiplier    float64         `json:"multiplier"`
	FinalPrice    float64         `json:"final_price"`
	RuleID        *uuid.UUID      `json:"rule_id,omitempty"`
	RuleName      string          `json:"rule_name,omitempty"`
	DayType       catalog.DayType `json:"day_type"`
}

// Resolver computes effective ticket prices from dynamic pricing rules.
// It holds no mutable state and has no side effects.
type Resolver struct {
	catalog  Catalog
	calendar HolidayCalendar
}

// NewResolver creates a pricing resolver. A nil calendar disables holiday
// classification.
func NewResolver(cat Catalog, calendar HolidayCalendar) *Resolver {
	if calendar == nil {
		calendar = NoHolidays{}
	}
	return &Resolver{catalog: cat, calendar: calendar}
}

// ClassifyDay derives the day type of a timestamp. Holidays take precedence
// over the weekday/weekend split.
func (r *Resolver) ClassifyDay(at time.Time) catalog.DayType {
	if r.calendar.IsHoliday(at) {
		return catalog.DayTypeHoliday
	}
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return catalog.DayTypeWeekend
	default:
		return catalog.DayTypeWeekday
	}
}

// ResolvePrice computes the effective price of a ticket type at the given
// time. Candidate rules are those whose time interval contains the
// time-of-day (intervals may wrap past midnight) and whose day type matches
// the derived classification or is All. When several rules match, the one
// with the highest multiplier wins; this mirrors the upstream ordering of
// rules by multiplier descending and is a deliberate policy, not an
// incidental default. With no matching rule the multiplier is 1.0.
func (r *Resolver) ResolvePrice(ctx context.Context, ticketTypeID uuid.UUID, at time.Time) (*Quote, error) {
	tt, err := r.catalog.GetTicketType(ctx, ticketTypeID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, common.NewNotFoundError("ticket type not found", err)
		}
		return nil, fmt.Errorf("resolve price: %w", err)
	}

	rules, err := r.catalog.GetActivePricingRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve price: %w", err)
	}

	dayType := r.ClassifyDay(at)
	minuteOfDay := at.Hour()*60 + at.Minute()

	quote := &Quote{
		TicketTypeID:  tt.ID,
		TypeName:      tt.Name,
		ValidityHours: tt.ValidityHours,
		BasePrice:     tt.BasePrice,
		Multiplier:    1.0,
		DayType:       dayType,
	}

	for _, rule := range rules {
		if rule.DayType != dayType && rule.DayType != catalog.DayTypeAll {
			continue
		}
		ok, err := intervalContains(rule.StartTime, rule.EndTime, minuteOfDay)
		if err != nil {
			return nil, fmt.Errorf("rule %s has malformed interval: %w", rule.ID, err)
		}
		if !ok {
			continue
		}
		if quote.RuleID == nil || rule.Multiplier > quote.Multiplier {
			id := rule.ID
			quote.RuleID = &id
			quote.RuleName = rule.Name
			quote.Multiplier = rule.Multiplier
		}
	}

	quote.FinalPrice = RoundCurrency(tt.BasePrice * quote.Multiplier)
	return quote, nil
}

// intervalContains reports whether the half-open interval [start, end) in
// HH:MM contains the given minute of day. start > end means the interval
// wraps past midnight; start == end covers the whole day.
func intervalContains(start, end string, minute int) (bool, error) {
	s, err := parseMinutes(start)
	if err != nil {
		return false, err
	}
	e, err := parseMinutes(end)
	if err != nil {
		return false, err
	}

	switch {
	case s == e:
		return true, nil
	case s < e:
		return minute >= s && minute < e, nil
	default:
		return minute >= s || minute < e, nil
	}
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// RoundCurrency rounds to 2 decimal places, half up
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
