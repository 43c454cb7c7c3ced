package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)
	assert.Equal(t, 570, ts.Minutes())

	ts, err = NewTimeStringFromString("17:45:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:45"), ts)

	_, err = NewTimeStringFromString("9.30")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromString_Canonical(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "padded", input: " 09:05 ", want: "09:05"},
		{name: "zero seconds", input: "09:05:00", want: "09:05"},
		{name: "non-zero seconds", input: "09:05:30", want: "09:05"},
		{name: "invalid seconds", input: "09:05:99", wantErr: true},
		{name: "invalid minutes", input: "09:75", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_ValidateRequiresCanonicalForm(t *testing.T) {
	assert.NoError(t, TimeString("09:05").Validate())
	assert.ErrorIs(t, TimeString("9:05").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("09:05:00").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("").Validate(), ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	end, err := MustTimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), end)

	_, err = MustTimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("08:00").IsBefore("08:30"))
	assert.False(t, MustTimeString("08:30").IsBefore("08:30"))
	assert.True(t, MustTimeString("12:00").IsAfter("11:59"))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("clinic", 3*60*60)
	date := time.Date(2024, 12, 20, 0, 0, 0, 0, loc)

	got := MustTimeString("14:15").On(date)
	assert.Equal(t, time.Date(2024, 12, 20, 14, 15, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:00:00")))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 16, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
