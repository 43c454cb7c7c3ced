package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// AppointmentRepository источник записей на выбранный день
type AppointmentRepository interface {
	// FetchAppointmentsForDate возвращает активные записи на дату
	FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
