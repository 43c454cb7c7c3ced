package availability

import (
	"fmt"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// Overlaps compares two half-open intervals [start, start+duration) given in minutes.
// Touching endpoints do not overlap.
func Overlaps(aStart, aDuration, bStart, bDuration int) bool {
	return aStart < bStart+bDuration && bStart < aStart+aDuration
}

// HasConflict reports whether the candidate, lasting serviceDuration minutes,
// overlaps any existing appointment on the same day.
// serviceDuration must be positive; anything else is a programming error and panics.
func HasConflict(candidate domain.TimeSlot, serviceDuration int, existing []domain.ExistingAppointment) bool {
	_, found := FindConflict(candidate, serviceDuration, existing)
	return found
}

// FindConflict is HasConflict that also returns the first overlapping appointment
func FindConflict(
	candidate domain.TimeSlot,
	serviceDuration int,
	existing []domain.ExistingAppointment,
) (domain.ExistingAppointment, bool) {
	if serviceDuration <= 0 {
		panic(fmt.Sprintf("availability: service duration must be positive, got %d", serviceDuration))
	}

	start := candidate.StartTime.Minutes()
	for _, appt := range existing {
		if !domain.SameDay(appt.Date, candidate.Date) {
			continue
		}
		apptStart := appt.StartTime.Minutes()
		if apptStart < 0 {
			continue
		}
		if Overlaps(start, serviceDuration, apptStart, appt.DurationMinutes) {
			return appt, true
		}
	}

	return domain.ExistingAppointment{}, false
}
