package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessHours_Validate(t *testing.T) {
	assert.NoError(t, BusinessHours{StartHour: 8, EndHour: 18}.Validate())
	assert.ErrorIs(t, BusinessHours{StartHour: 18, EndHour: 8}.Validate(), ErrInvalidBusinessHours)
	assert.ErrorIs(t, BusinessHours{StartHour: 9, EndHour: 9}.Validate(), ErrInvalidBusinessHours)
	assert.ErrorIs(t, BusinessHours{StartHour: 8, EndHour: 24}.Validate(), ErrInvalidBusinessHours)

	h := BusinessHours{StartHour: 8, EndHour: 18}
	assert.Equal(t, 480, h.StartMinutes())
	assert.Equal(t, 1080, h.EndMinutes())
}

func TestNewCalendarExclusion(t *testing.T) {
	exclusion, err := NewCalendarExclusion([]string{"Sunday", " sat "}, []string{"2024-12-25", " 2025-01-01"})
	require.NoError(t, err)

	assert.True(t, exclusion.ExcludesWeekday(time.Sunday))
	assert.True(t, exclusion.ExcludesWeekday(time.Saturday))
	assert.False(t, exclusion.ExcludesWeekday(time.Monday))
	assert.True(t, exclusion.IsHoliday("2024-12-25"))
	assert.True(t, exclusion.IsHoliday("2025-01-01"))
	assert.False(t, exclusion.IsHoliday("2024-12-24"))

	_, err = NewCalendarExclusion([]string{"funday"}, nil)
	assert.ErrorIs(t, err, ErrInvalidExclusion)

	_, err = NewCalendarExclusion(nil, []string{"25.12.2024"})
	assert.ErrorIs(t, err, ErrInvalidExclusion)
}

func TestBookingWindow(t *testing.T) {
	w := BookingWindow{MinAdvanceHours: 24, MaxAdvanceDays: 90}
	require.NoError(t, w.Validate())
	assert.Equal(t, 24*time.Hour, w.MinAdvance())
	assert.Equal(t, 90*24*time.Hour, w.MaxAdvance())

	assert.ErrorIs(t, BookingWindow{MinAdvanceHours: -1, MaxAdvanceDays: 90}.Validate(), ErrInvalidBookingWindow)
	assert.ErrorIs(t, BookingWindow{MinAdvanceHours: 24, MaxAdvanceDays: 0}.Validate(), ErrInvalidBookingWindow)
	assert.ErrorIs(t, BookingWindow{MinAdvanceHours: 48, MaxAdvanceDays: 1}.Validate(), ErrInvalidBookingWindow)
}
