package appointmentmongo

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// appointmentDocument запись в коллекции appointments
// active дублирует статус: по нему построен частичный уникальный индекс
type appointmentDocument struct {
	ID              string `bson:"_id"`
	Date            string `bson:"date"` // YYYY-MM-DD
	StartTime       string `bson:"startTime"`
	StartMinutes    int    `bson:"startMinutes"`
	DurationMinutes int    `bson:"durationMinutes"`
	Status          string `bson:"status"`
	Active          bool   `bson:"active"`

	ServiceKey  string `bson:"serviceKey"`
	ServiceName string `bson:"serviceName"`

	PatientName string  `bson:"patientName"`
	Phone       string  `bson:"phone"`
	Email       *string `bson:"email,omitempty"`
	Notes       *string `bson:"notes,omitempty"`

	CancellationReason *string    `bson:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toDocument(a *domain.Appointment) appointmentDocument {
	return appointmentDocument{
		ID:                 a.ID.String(),
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		StartMinutes:       a.StartTime.Minutes(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Active:             a.IsActive(),
		ServiceKey:         a.ServiceKey,
		ServiceName:        a.ServiceName,
		PatientName:        a.PatientName,
		Phone:              a.Phone,
		Email:              a.Email,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (d appointmentDocument) toDomain(location *time.Location) (*domain.Appointment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(domain.DateFormat, d.Date, location)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return nil, err
	}

	return &domain.Appointment{
		ID:                 id,
		Date:               date,
		StartTime:          start,
		DurationMinutes:    d.DurationMinutes,
		Status:             domain.AppointmentStatus(d.Status),
		ServiceKey:         d.ServiceKey,
		ServiceName:        d.ServiceName,
		PatientName:        d.PatientName,
		Phone:              d.Phone,
		Email:              d.Email,
		Notes:              d.Notes,
		CancellationReason: d.CancellationReason,
		CancelledAt:        d.CancelledAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

// dayFilter фильтр записей на день для back office
func dayFilter(filter domain.DayAppointmentsFilter) bson.M {
	query := bson.M{"date": filter.Date.Format(domain.DateFormat)}

	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	} else if !filter.IncludeInactive {
		query["active"] = true
	}

	return query
}

// activeDayFilter фильтр записей, занимающих время
func activeDayFilter(date time.Time) bson.M {
	return bson.M{"date": date.Format(domain.DateFormat), "active": true}
}
