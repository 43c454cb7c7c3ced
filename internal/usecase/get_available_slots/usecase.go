package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// UseCase use case для получения слотов, доступных для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	validator       *availability.Validator
	generator       *availability.SlotGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	validator *availability.Validator,
	generator *availability.SlotGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		validator:       validator,
		generator:       generator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceKey, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	policy := uc.validator.Policy()

	// 3. Ищем услугу в каталоге
	service, ok := uc.validator.Catalog().Lookup(req.ServiceKey)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service %s not found", req.ServiceKey)
		return nil, ErrServiceNotFound
	}

	// 4. Валидация даты относительно окна записи
	date := policy.Day(req.Date)
	if err := validateDate(date, now, policy); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		Date:            date,
		ServiceKey:      service.Key,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
	}

	// 5. Выходной или праздник
	if !policy.IsBookableDate(date) {
		uc.logger.Info("GetAvailableSlots: clinic is closed on %s", date.Format(domain.DateFormat))
		response.Closed = true
		return response, nil
	}

	// 6. Генерируем кандидатов
	candidates := uc.generator.GenerateCandidateSlots(date)

	// 7. Получаем активные записи на эту дату
	existing, err := uc.appointmentRepo.FetchAppointmentsForDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Проверяем каждого кандидата
	response.Slots = evaluateSlots(uc.validator, candidates, date, service, existing, now)

	uc.logger.Info("GetAvailableSlots: %d/%d slots available for service=%s, date=%s",
		response.AvailableCount(), len(response.Slots), service.Key, date.Format(domain.DateFormat))

	return response, nil
}
