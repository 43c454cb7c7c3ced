package domain

import (
	"time"

	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// TimeSlot is a candidate appointment start on a given day.
// Its end is implied by the duration of the service being booked.
type TimeSlot struct {
	Date      time.Time
	StartTime types.TimeString
}

// StartAt returns the absolute start instant in the location of Date
func (s TimeSlot) StartAt() time.Time {
	return s.StartTime.On(s.Date)
}

// ExistingAppointment is the read-only view of a stored appointment used for overlap checks
type ExistingAppointment struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// SameDay reports whether two instants fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
