package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	validator       SlotValidator
	txManager       TransactionManager
	recorder        ValidationRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	validator SlotValidator,
	txManager TransactionManager,
	recorder ValidationRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		validator:       validator,
		txManager:       txManager,
		recorder:        recorder,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка и сохранение выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%s, date=%s, time=%s",
		req.ServiceKey, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := uc.validator.Policy().Day(req.Date)
	check := availability.Request{
		Date:       date,
		StartTime:  req.StartTime,
		ServiceKey: strings.TrimSpace(req.ServiceKey),
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Повторная проверка и сохранение в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Свежий снимок записей на день и проверка правил
		verdict, err := uc.validator.Validate(txCtx, check, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to validate slot: %v", err)
			return fmt.Errorf("%w: failed to validate slot: %w", ErrInternal, err)
		}
		uc.recorder.RecordValidation(verdict.String())

		if !verdict.IsAccepted() {
			uc.logger.Warn("CreateAppointment: slot %s %s rejected: %s",
				date.Format(domain.DateFormat), req.StartTime, verdict)
			return rejectionError(verdict)
		}

		service, ok := uc.validator.Catalog().Lookup(check.ServiceKey)
		if !ok {
			return ErrUnknownService
		}

		// 3.2. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ID:              uuid.New(),
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceKey:      service.Key,
			ServiceName:     service.Name,
			PatientName:     strings.TrimSpace(req.PatientName),
			Phone:           strings.TrimSpace(req.Phone),
			Email:           normalizeOptional(req.Email),
			Notes:           normalizeOptional(req.Notes),
		}

		// 3.3. Сохраняем запись; уникальный индекс ловит гонку, которую не поймала проверка
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s %s taken concurrently",
					date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceKey:      result.ServiceKey,
		ServiceName:     result.ServiceName,
		PatientName:     result.PatientName,
		Phone:           result.Phone,
		Email:           result.Email,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
