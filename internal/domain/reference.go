package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidBusinessHours is a startup configuration error
	ErrInvalidBusinessHours = errors.New("domain: invalid business hours")

	// ErrInvalidBookingWindow is a startup configuration error
	ErrInvalidBookingWindow = errors.New("domain: invalid booking window")

	// ErrInvalidExclusion is a startup configuration error
	ErrInvalidExclusion = errors.New("domain: invalid calendar exclusion")
)

// ServiceCatalogEntry is a bookable lab service. DurationMinutes is always > 0.
type ServiceCatalogEntry struct {
	Key             string
	Name            string
	DurationMinutes int
	Description     string
}

// BusinessHours is the daily window [StartHour:00, EndHour:00) in clinic local time
type BusinessHours struct {
	StartHour int
	EndHour   int
}

func (h BusinessHours) Validate() error {
	if h.StartHour < 0 || h.StartHour > 23 || h.EndHour < 0 || h.EndHour > 23 {
		return fmt.Errorf("%w: hours must be within 0..23, got %d..%d", ErrInvalidBusinessHours, h.StartHour, h.EndHour)
	}
	if h.StartHour >= h.EndHour {
		return fmt.Errorf("%w: start %d must be before end %d", ErrInvalidBusinessHours, h.StartHour, h.EndHour)
	}
	return nil
}

// StartMinutes returns the opening time in minutes since midnight
func (h BusinessHours) StartMinutes() int {
	return h.StartHour * 60
}

// EndMinutes returns the closing time in minutes since midnight
func (h BusinessHours) EndMinutes() int {
	return h.EndHour * 60
}

// CalendarExclusion lists days on which nothing can be booked
type CalendarExclusion struct {
	Weekdays []time.Weekday
	Holidays map[string]struct{} // keyed by DateFormat
}

// NewCalendarExclusion parses weekday names ("sunday") and ISO dates ("2024-12-25")
func NewCalendarExclusion(weekdays []string, holidays []string) (CalendarExclusion, error) {
	exclusion := CalendarExclusion{
		Weekdays: make([]time.Weekday, 0, len(weekdays)),
		Holidays: make(map[string]struct{}, len(holidays)),
	}

	for _, name := range weekdays {
		wd, ok := parseWeekday(name)
		if !ok {
			return CalendarExclusion{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidExclusion, name)
		}
		exclusion.Weekdays = append(exclusion.Weekdays, wd)
	}

	for _, day := range holidays {
		parsed, err := time.Parse(DateFormat, strings.TrimSpace(day))
		if err != nil {
			return CalendarExclusion{}, fmt.Errorf("%w: holiday %q is not YYYY-MM-DD", ErrInvalidExclusion, day)
		}
		exclusion.Holidays[parsed.Format(DateFormat)] = struct{}{}
	}

	return exclusion, nil
}

// ExcludesWeekday reports whether wd is a non-working weekday
func (e CalendarExclusion) ExcludesWeekday(wd time.Weekday) bool {
	for _, excluded := range e.Weekdays {
		if excluded == wd {
			return true
		}
	}
	return false
}

// IsHoliday reports whether the ISO date is in the fixed holiday list
func (e CalendarExclusion) IsHoliday(isoDate string) bool {
	_, ok := e.Holidays[isoDate]
	return ok
}

// BookingWindow bounds how soon and how far ahead a slot may be requested
type BookingWindow struct {
	MinAdvanceHours int
	MaxAdvanceDays  int
}

func (w BookingWindow) Validate() error {
	if w.MinAdvanceHours < 0 {
		return fmt.Errorf("%w: min advance hours must not be negative", ErrInvalidBookingWindow)
	}
	if w.MaxAdvanceDays <= 0 {
		return fmt.Errorf("%w: max advance days must be positive", ErrInvalidBookingWindow)
	}
	if time.Duration(w.MinAdvanceHours)*time.Hour >= time.Duration(w.MaxAdvanceDays)*24*time.Hour {
		return fmt.Errorf("%w: min advance must be shorter than max advance", ErrInvalidBookingWindow)
	}
	return nil
}

func (w BookingWindow) MinAdvance() time.Duration {
	return time.Duration(w.MinAdvanceHours) * time.Hour
}

func (w BookingWindow) MaxAdvance() time.Duration {
	return time.Duration(w.MaxAdvanceDays) * 24 * time.Hour
}

func parseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	default:
		return time.Sunday, false
	}
}
