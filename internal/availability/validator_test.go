package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

type fakeFetcher struct {
	appointments []domain.ExistingAppointment
	err          error
	calls        int
	lastDate     time.Time
}

func (f *fakeFetcher) FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error) {
	f.calls++
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

func newTestValidator(t *testing.T, fetcher AppointmentFetcher) *Validator {
	t.Helper()
	return NewValidator(newTestPolicy(t), newTestCatalog(t), fetcher)
}

func request(t *testing.T, date, start, service string) Request {
	t.Helper()
	return Request{Date: day(t, date), StartTime: types.MustTimeString(start), ServiceKey: service}
}

func TestValidator_Evaluate(t *testing.T) {
	v := newTestValidator(t, &fakeFetcher{})
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))
	existing := []domain.ExistingAppointment{
		{Date: day(t, "2024-12-21"), StartTime: types.MustTimeString("09:00"), DurationMinutes: 60},
	}

	tests := []struct {
		name string
		req  Request
		want domain.ValidationResult
	}{
		{"inside min advance", request(t, "2024-12-20", "09:00", "consultation"), domain.ValidationRejectedOutsideAdvanceWindow},
		{"free slot", request(t, "2024-12-21", "11:00", "consultation"), domain.ValidationAccepted},
		{"overlaps existing", request(t, "2024-12-21", "09:30", "consultation"), domain.ValidationRejectedConflict},
		{"adjacent to existing", request(t, "2024-12-21", "10:00", "consultation"), domain.ValidationAccepted},
		{"sunday", request(t, "2024-12-22", "09:00", "consultation"), domain.ValidationRejectedExcludedDate},
		{"holiday", request(t, "2024-12-25", "09:00", "consultation"), domain.ValidationRejectedExcludedDate},
		{"unknown service", request(t, "2024-12-21", "11:00", "whitening"), domain.ValidationRejectedUnknownService},
		{"before opening", request(t, "2024-12-21", "07:30", "consultation"), domain.ValidationRejectedOutsideBusinessHours},
		{"runs past closing", request(t, "2024-12-21", "17:30", "crown-fitting"), domain.ValidationRejectedOutsideBusinessHours},
		{"ends at closing", request(t, "2024-12-21", "17:00", "crown-fitting"), domain.ValidationAccepted},
		{"off grid start", request(t, "2024-12-21", "11:15", "consultation"), domain.ValidationAccepted},
		{"too far ahead", request(t, "2025-03-21", "09:00", "consultation"), domain.ValidationRejectedOutsideAdvanceWindow},
		{"past date", request(t, "2024-12-18", "09:00", "consultation"), domain.ValidationRejectedOutsideAdvanceWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Evaluate(tt.req, existing, now))
		})
	}
}

func TestValidator_EvaluateRuleOrder(t *testing.T) {
	v := newTestValidator(t, &fakeFetcher{})
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))
	existing := []domain.ExistingAppointment{
		{Date: day(t, "2024-12-20"), StartTime: types.MustTimeString("09:00"), DurationMinutes: 60},
	}

	// unknown service wins over an excluded date
	assert.Equal(t, domain.ValidationRejectedUnknownService,
		v.Evaluate(request(t, "2024-12-22", "09:00", "whitening"), existing, now))

	// excluded date wins over business hours
	assert.Equal(t, domain.ValidationRejectedExcludedDate,
		v.Evaluate(request(t, "2024-12-22", "06:00", "consultation"), existing, now))

	// business hours win over the advance window
	assert.Equal(t, domain.ValidationRejectedOutsideBusinessHours,
		v.Evaluate(request(t, "2024-12-20", "07:00", "consultation"), existing, now))

	// advance window wins over a conflict
	assert.Equal(t, domain.ValidationRejectedOutsideAdvanceWindow,
		v.Evaluate(request(t, "2024-12-20", "09:00", "consultation"), existing, now))
}

func TestValidator_EvaluateIsIdempotent(t *testing.T) {
	v := newTestValidator(t, &fakeFetcher{})
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))
	req := request(t, "2024-12-21", "09:00", "consultation")

	first := v.Evaluate(req, nil, now)
	assert.Equal(t, first, v.Evaluate(req, nil, now))
	assert.Equal(t, domain.ValidationAccepted, first)
}

func TestValidator_EvaluateUTCDate(t *testing.T) {
	v := newTestValidator(t, &fakeFetcher{})
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))

	date, err := time.Parse(domain.DateFormat, "2024-12-22")
	require.NoError(t, err)

	result := v.Evaluate(Request{Date: date, StartTime: types.MustTimeString("09:00"), ServiceKey: "consultation"}, nil, now)
	assert.Equal(t, domain.ValidationRejectedExcludedDate, result)
}

func TestValidator_Validate(t *testing.T) {
	fetcher := &fakeFetcher{appointments: []domain.ExistingAppointment{
		{Date: day(t, "2024-12-21"), StartTime: types.MustTimeString("09:00"), DurationMinutes: 60},
	}}
	v := newTestValidator(t, fetcher)
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))

	result, err := v.Validate(context.Background(), request(t, "2024-12-21", "09:30", "consultation"), now)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationRejectedConflict, result)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, day(t, "2024-12-21"), fetcher.lastDate)

	result, err = v.Validate(context.Background(), request(t, "2024-12-21", "10:00", "consultation"), now)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationAccepted, result)
}

func TestValidator_ValidateSkipsFetchOnEarlyRejection(t *testing.T) {
	fetcher := &fakeFetcher{}
	v := newTestValidator(t, fetcher)
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))

	result, err := v.Validate(context.Background(), request(t, "2024-12-22", "09:00", "consultation"), now)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationRejectedExcludedDate, result)
	assert.Zero(t, fetcher.calls)
}

func TestValidator_ValidateFetchError(t *testing.T) {
	dbErr := errors.New("connection reset")
	v := newTestValidator(t, &fakeFetcher{err: dbErr})
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, clinicLocation(t))

	_, err := v.Validate(context.Background(), request(t, "2024-12-21", "09:00", "consultation"), now)
	assert.ErrorIs(t, err, ErrFetchAppointments)
	assert.ErrorIs(t, err, dbErr)
}
