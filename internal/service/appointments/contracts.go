package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByDate(ctx context.Context, filter domain.DayAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}

// Calendar нормализует дату к дню клиники
type Calendar interface {
	Day(t time.Time) time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
