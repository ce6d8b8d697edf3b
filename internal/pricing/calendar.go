package pricing

import "time"

// HolidayCalendar classifies dates as public holidays. The engine has no
// built-in holiday source; callers plug one in. Without a calendar,
// Holiday-scoped pricing rules never match.
type HolidayCalendar interface {
	IsHoliday(t time.Time) bool
}

// NoHolidays is the default calendar: no date is a holiday.
type NoHolidays struct{}

// IsHoliday always returns false
func (NoHolidays) IsHoliday(time.Time) bool { return false }

// FixedHolidays is a calendar backed by a fixed set of dates (year-month-day
// in the date's own location).
type FixedHolidays struct {
	dates map[string]bool
}

// NewFixedHolidays builds a calendar from a list of dates
func NewFixedHolidays(dates []time.Time) *FixedHolidays {
	m := make(map[string]bool, len(dates))
	for _, d := range dates {
		m[d.Format("2006-01-02")] = true
	}
	return &FixedHolidays{dates: m}
}

// IsHoliday reports whether t's calendar date is in the set
func (f *FixedHolidays) IsHoliday(t time.Time) bool {
	return f.dates[t.Format("2006-01-02")]
}
