package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

func TestSlotGenerator_GenerateCandidateSlots(t *testing.T) {
	policy := newTestPolicy(t)
	gen := NewSlotGenerator(policy, 30)

	slots := gen.GenerateCandidateSlots(day(t, "2024-12-20"))

	require.Len(t, slots, 20)
	assert.Equal(t, types.MustTimeString("08:00"), slots[0])
	assert.Equal(t, types.MustTimeString("17:30"), slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30, slots[i].Minutes()-slots[i-1].Minutes(), "slot %d", i)
	}
	for _, s := range slots {
		assert.True(t, policy.IsWithinBusinessHours(s, gen.StepMinutes()), s.String())
	}
}

func TestSlotGenerator_ExcludedDatesAreEmpty(t *testing.T) {
	gen := NewSlotGenerator(newTestPolicy(t), 30)

	sunday := gen.GenerateCandidateSlots(day(t, "2024-12-22"))
	assert.NotNil(t, sunday)
	assert.Empty(t, sunday)

	assert.Empty(t, gen.GenerateCandidateSlots(day(t, "2024-12-25")))
}

func TestSlotGenerator_UnevenStep(t *testing.T) {
	gen := NewSlotGenerator(newTestPolicy(t), 45)

	slots := gen.GenerateCandidateSlots(day(t, "2024-12-20"))

	require.Len(t, slots, 13)
	assert.Equal(t, types.MustTimeString("17:00"), slots[len(slots)-1])
}

func TestSlotGenerator_StepLongerThanDay(t *testing.T) {
	policy, err := NewCalendarPolicy(
		domain.BusinessHours{StartHour: 8, EndHour: 9},
		domain.CalendarExclusion{},
		domain.BookingWindow{MinAdvanceHours: 24, MaxAdvanceDays: 90},
		clinicLocation(t),
	)
	require.NoError(t, err)

	assert.Empty(t, NewSlotGenerator(policy, 90).GenerateCandidateSlots(day(t, "2024-12-20")))
	assert.Len(t, NewSlotGenerator(policy, 60).GenerateCandidateSlots(day(t, "2024-12-20")), 1)
}

func TestSlotGenerator_DefaultStep(t *testing.T) {
	gen := NewSlotGenerator(newTestPolicy(t), 0)
	assert.Equal(t, domain.DefaultSlotStepMinutes, gen.StepMinutes())
}
