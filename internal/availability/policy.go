package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// ErrNilLocation is returned when the policy is built without a clinic location
var ErrNilLocation = errors.New("availability: clinic location is required")

// CalendarPolicy answers which days and instants may be booked.
// It is immutable after construction and safe for concurrent use.
type CalendarPolicy struct {
	hours     domain.BusinessHours
	exclusion domain.CalendarExclusion
	window    domain.BookingWindow
	location  *time.Location
}

func NewCalendarPolicy(
	hours domain.BusinessHours,
	exclusion domain.CalendarExclusion,
	window domain.BookingWindow,
	location *time.Location,
) (*CalendarPolicy, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNilLocation
	}

	holidays := make(map[string]struct{}, len(exclusion.Holidays))
	for day := range exclusion.Holidays {
		holidays[day] = struct{}{}
	}
	weekdays := append([]time.Weekday(nil), exclusion.Weekdays...)

	return &CalendarPolicy{
		hours:     hours,
		exclusion: domain.CalendarExclusion{Weekdays: weekdays, Holidays: holidays},
		window:    window,
		location:  location,
	}, nil
}

func (p *CalendarPolicy) BusinessHours() domain.BusinessHours {
	return p.hours
}

func (p *CalendarPolicy) BookingWindow() domain.BookingWindow {
	return p.window
}

func (p *CalendarPolicy) Location() *time.Location {
	return p.location
}

// Day keeps the calendar day of t and returns it as midnight in the clinic location.
// The year, month and day are read in t's own location.
func (p *CalendarPolicy) Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.location)
}

// Today returns the current clinic day
func (p *CalendarPolicy) Today(now time.Time) time.Time {
	return p.Day(now.In(p.location))
}

// LastBookableDay returns the clinic day of now + max advance
func (p *CalendarPolicy) LastBookableDay(now time.Time) time.Time {
	return p.Day(now.Add(p.window.MaxAdvance()).In(p.location))
}

// IsBookableDate is false for excluded weekdays and fixed holidays
func (p *CalendarPolicy) IsBookableDate(date time.Time) bool {
	if p.exclusion.ExcludesWeekday(date.Weekday()) {
		return false
	}
	if p.exclusion.IsHoliday(date.Format(domain.DateFormat)) {
		return false
	}
	return true
}

// IsWithinAdvanceWindow requires candidate to be strictly later than now + min advance
// and not later than now + max advance.
func (p *CalendarPolicy) IsWithinAdvanceWindow(candidate, now time.Time) bool {
	if !candidate.After(now) {
		return false
	}
	if !candidate.After(now.Add(p.window.MinAdvance())) {
		return false
	}
	if candidate.After(now.Add(p.window.MaxAdvance())) {
		return false
	}
	return true
}

// IsWithinBusinessHours requires [start, start+duration) to lie inside the business hours
func (p *CalendarPolicy) IsWithinBusinessHours(start types.TimeString, durationMinutes int) bool {
	startMinutes := start.Minutes()
	if startMinutes < 0 || durationMinutes <= 0 {
		return false
	}
	return startMinutes >= p.hours.StartMinutes() && startMinutes+durationMinutes <= p.hours.EndMinutes()
}

func (p *CalendarPolicy) String() string {
	return fmt.Sprintf("hours=%02d:00-%02d:00 window=%dh..%dd tz=%s",
		p.hours.StartHour, p.hours.EndHour, p.window.MinAdvanceHours, p.window.MaxAdvanceDays, p.location)
}
