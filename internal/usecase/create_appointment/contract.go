package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// SlotValidator проверка слота на свежем снимке записей
type SlotValidator interface {
	Validate(ctx context.Context, req availability.Request, now time.Time) (domain.ValidationResult, error)
	Catalog() *availability.ServiceCatalog
	Policy() *availability.CalendarPolicy
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ValidationRecorder счетчик результатов проверки
type ValidationRecorder interface {
	RecordValidation(result string)
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
