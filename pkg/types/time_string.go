package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeFormat is the wire and storage format of a TimeString
const TimeFormat = "15:04"

const timeWithSecondsFormat = "15:04:05"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned when a value cannot be parsed as HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the [00:00, 24:00] range
	ErrTimeOverflow = errors.New("time string out of day range")
)

// TimeString is a wall-clock time of day in HH:MM form, without date or location.
// The zero value ("") means "not set".
type TimeString string

// NewTimeString takes the hour and minute of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses H:MM or HH:MM and returns the canonical HH:MM form.
// HH:MM:SS from SQL TIME columns is accepted; seconds are dropped after validation.
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	layout := TimeFormat
	if strings.Count(s, ":") == 2 {
		layout = timeWithSecondsFormat
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(parsed), nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// MustTimeString is NewTimeStringFromString for constants and tests
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the canonical HH:MM form
func (t TimeString) Validate() error {
	canonical, err := NewTimeStringFromString(string(t))
	if err != nil || canonical != t {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns minutes since midnight. Invalid values return -1.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes shifts the time. Results past midnight are an error.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	start := t.Minutes()
	if start < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return NewTimeStringFromMinutes(start + minutes)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On combines the time with the calendar day of date, in date's location
func (t TimeString) On(date time.Time) time.Time {
	m := t.Minutes()
	if m < 0 {
		m = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// Scan implements sql.Scanner for TIME and text columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
