package appointmentmongo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

func TestToDocument_ActiveFlagFollowsStatus(t *testing.T) {
	a := &domain.Appointment{
		ID:              uuid.New(),
		Date:            time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("09:30"),
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}

	doc := toDocument(a)
	assert.True(t, doc.Active)
	assert.Equal(t, "2024-12-21", doc.Date)
	assert.Equal(t, 570, doc.StartMinutes)

	a.Status = domain.StatusNoShow
	assert.False(t, toDocument(a).Active)
}

func TestDocumentToDomain_UsesClinicLocation(t *testing.T) {
	loc := time.FixedZone("clinic", 3*60*60)
	id := uuid.New()

	a, err := appointmentDocument{
		ID:              id.String(),
		Date:            "2024-12-21",
		StartTime:       "09:30",
		DurationMinutes: 45,
		Status:          "pending",
	}.toDomain(loc)
	require.NoError(t, err)

	assert.Equal(t, id, a.ID)
	assert.Equal(t, time.Date(2024, 12, 21, 0, 0, 0, 0, loc), a.Date)
	assert.Equal(t, domain.StatusPending, a.Status)

	_, err = appointmentDocument{ID: "not-a-uuid", Date: "2024-12-21", StartTime: "09:30"}.toDomain(loc)
	assert.Error(t, err)
}

func TestDayFilter(t *testing.T) {
	date := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{"date": "2024-12-21", "active": true}, dayFilter(domain.DayAppointmentsFilter{Date: date}))
	assert.Equal(t, bson.M{"date": "2024-12-21"}, dayFilter(domain.DayAppointmentsFilter{Date: date, IncludeInactive: true}))

	status := domain.StatusCancelled
	assert.Equal(t, bson.M{"date": "2024-12-21", "status": "cancelled"}, dayFilter(domain.DayAppointmentsFilter{Date: date, Status: &status}))

	assert.Equal(t, bson.M{"date": "2024-12-21", "active": true}, activeDayFilter(date))
}
