package get_day_appointments

import (
	"context"

	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDayAppointments(ctx context.Context, req *models.GetDayAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
