package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

func TestAppointment_StatusRules(t *testing.T) {
	tests := []struct {
		status      AppointmentStatus
		active      bool
		cancellable bool
	}{
		{StatusPending, true, true},
		{StatusConfirmed, true, true},
		{StatusCompleted, true, false},
		{StatusCancelled, false, false},
		{StatusNoShow, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.active, a.IsActive())
			assert.Equal(t, tt.cancellable, a.CanBeCancelled())
		})
	}
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	pending := &Appointment{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.True(t, pending.CanTransitionTo(StatusNoShow))
	assert.False(t, pending.CanTransitionTo(StatusCompleted))
	assert.False(t, pending.CanTransitionTo(StatusCancelled))

	confirmed := &Appointment{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, confirmed.CanTransitionTo(StatusPending))

	for _, final := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		a := &Appointment{Status: final}
		assert.False(t, a.CanTransitionTo(StatusConfirmed), final)
	}
}

func TestParseStatus(t *testing.T) {
	status, ok := ParseStatus("no_show")
	assert.True(t, ok)
	assert.Equal(t, StatusNoShow, status)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestAppointment_EndTime(t *testing.T) {
	a := &Appointment{StartTime: types.MustTimeString("17:00"), DurationMinutes: 90}
	assert.Equal(t, types.MustTimeString("18:30"), a.EndTime())

	a = &Appointment{StartTime: types.MustTimeString("23:30"), DurationMinutes: 60}
	assert.Empty(t, a.EndTime())
}
