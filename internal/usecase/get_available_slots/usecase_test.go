package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/logger"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

type fakeRepo struct {
	appointments []domain.ExistingAppointment
	err          error
	calls        int
}

func (r *fakeRepo) FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error) {
	r.calls++
	return r.appointments, r.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func setup(t *testing.T, repo *fakeRepo) (*UseCase, *time.Location) {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	exclusion, err := domain.NewCalendarExclusion([]string{"sunday"}, []string{"2024-12-25"})
	require.NoError(t, err)

	policy, err := availability.NewCalendarPolicy(
		domain.BusinessHours{StartHour: 8, EndHour: 18},
		exclusion,
		domain.BookingWindow{MinAdvanceHours: 24, MaxAdvanceDays: 90},
		loc,
	)
	require.NoError(t, err)

	catalog, err := availability.NewServiceCatalog([]domain.ServiceCatalogEntry{
		{Key: "consultation", Name: "Consultation", DurationMinutes: 30},
		{Key: "crown-fitting", Name: "Crown fitting", DurationMinutes: 60},
	})
	require.NoError(t, err)

	uc := NewUseCase(repo, availability.NewValidator(policy, catalog, repo), availability.NewSlotGenerator(policy, 30), logger.NewNop())
	uc.timeProvider = fixedClock{now: time.Date(2024, 12, 19, 10, 0, 0, 0, loc)}

	return uc, loc
}

func date(loc *time.Location, y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func TestExecute_MarksConflictingSlots(t *testing.T) {
	repo := &fakeRepo{}
	uc, loc := setup(t, repo)
	repo.appointments = []domain.ExistingAppointment{
		{Date: date(loc, 2024, 12, 21), StartTime: types.MustTimeString("09:00"), DurationMinutes: 60},
	}

	resp, err := uc.Execute(context.Background(), &Request{ServiceKey: "consultation", Date: date(loc, 2024, 12, 21)})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	assert.Equal(t, "Consultation", resp.ServiceName)
	require.Len(t, resp.Slots, 20)
	assert.Equal(t, 18, resp.AvailableCount())
	assert.Equal(t, 1, repo.calls)

	byStart := make(map[string]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime.String()] = s
	}
	assert.Equal(t, domain.ValidationRejectedConflict, byStart["09:00"].Reason)
	assert.Equal(t, domain.ValidationRejectedConflict, byStart["09:30"].Reason)
	assert.True(t, byStart["10:00"].Available)
	assert.Empty(t, byStart["10:00"].Reason)
	assert.Equal(t, types.MustTimeString("10:30"), byStart["10:00"].EndTime)
}

func TestExecute_MinAdvanceHidesEarlySlots(t *testing.T) {
	uc, loc := setup(t, &fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceKey: "consultation", Date: date(loc, 2024, 12, 20)})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		if s.StartTime.Minutes() <= 10*60 {
			assert.False(t, s.Available, s.StartTime.String())
			assert.Equal(t, domain.ValidationRejectedOutsideAdvanceWindow, s.Reason)
		} else {
			assert.True(t, s.Available, s.StartTime.String())
		}
	}
}

func TestExecute_LongServiceNearClosing(t *testing.T) {
	uc, loc := setup(t, &fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceKey: "crown-fitting", Date: date(loc, 2024, 12, 21)})
	require.NoError(t, err)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.MustTimeString("17:30"), last.StartTime)
	assert.Equal(t, domain.ValidationRejectedOutsideBusinessHours, last.Reason)
	assert.True(t, resp.Slots[len(resp.Slots)-2].Available)
}

func TestExecute_ClosedDay(t *testing.T) {
	repo := &fakeRepo{}
	uc, loc := setup(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{ServiceKey: "consultation", Date: date(loc, 2024, 12, 22)})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, repo.calls)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func(loc *time.Location) *Request
		repoErr error
		wantErr error
	}{
		{
			name:    "missing service",
			req:     func(loc *time.Location) *Request { return &Request{Date: date(loc, 2024, 12, 21)} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     func(loc *time.Location) *Request { return &Request{ServiceKey: "consultation"} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown service",
			req:     func(loc *time.Location) *Request { return &Request{ServiceKey: "whitening", Date: date(loc, 2024, 12, 21)} },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "past date",
			req:     func(loc *time.Location) *Request { return &Request{ServiceKey: "consultation", Date: date(loc, 2024, 12, 18)} },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "beyond window",
			req:     func(loc *time.Location) *Request { return &Request{ServiceKey: "consultation", Date: date(loc, 2025, 3, 20)} },
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "repository failure",
			req:     func(loc *time.Location) *Request { return &Request{ServiceKey: "consultation", Date: date(loc, 2024, 12, 21)} },
			repoErr: errors.New("db down"),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, loc := setup(t, &fakeRepo{err: tt.repoErr})

			_, err := uc.Execute(context.Background(), tt.req(loc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TodayHasNoAvailableSlots(t *testing.T) {
	uc, loc := setup(t, &fakeRepo{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceKey: "consultation", Date: date(loc, 2024, 12, 19)})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Slots)
	assert.Zero(t, resp.AvailableCount())
}
