package availability

import (
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// SlotGenerator enumerates candidate start times for a day at a fixed step.
// It knows nothing about existing appointments.
type SlotGenerator struct {
	policy      *CalendarPolicy
	stepMinutes int
}

// NewSlotGenerator uses the default 30 minute step when stepMinutes <= 0
func NewSlotGenerator(policy *CalendarPolicy, stepMinutes int) *SlotGenerator {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &SlotGenerator{policy: policy, stepMinutes: stepMinutes}
}

func (g *SlotGenerator) StepMinutes() int {
	return g.stepMinutes
}

// GenerateCandidateSlots returns ascending start times covering [open, close) of the business hours.
// Every returned start leaves at least one full step before closing.
// Non-bookable dates yield an empty, non-nil slice.
func (g *SlotGenerator) GenerateCandidateSlots(date time.Time) []types.TimeString {
	if !g.policy.IsBookableDate(date) {
		return []types.TimeString{}
	}

	open := g.policy.hours.StartMinutes()
	closing := g.policy.hours.EndMinutes()

	slots := make([]types.TimeString, 0, (closing-open)/g.stepMinutes)
	for m := open; m+g.stepMinutes <= closing; m += g.stepMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, ts)
	}

	return slots
}
