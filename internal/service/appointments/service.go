package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями в back office
type Service struct {
	appointmentRepo AppointmentRepository
	calendar        Calendar
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	calendar Calendar,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetDayAppointments получает записи на день
// По умолчанию только активные; IncludeInactive добавляет отменённые и no-show
func (s *Service) GetDayAppointments(ctx context.Context, req *models.GetDayAppointmentsRequest) (*models.AppointmentListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetDayAppointments: fetching appointments for date=%s", req.Date.Format(domain.DateFormat))
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	req.Date = s.calendar.Day(req.Date)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDayAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByDate(ctx, filter)
	if err != nil {
		s.logger.Error("GetDayAppointments: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayAppointments: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(req.Date, appointments), nil
}

// Cancel отменяет запись; слот сразу освобождается для новых записей
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found during cancellation", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return nil
}

// UpdateStatus переводит запись в confirmed, completed или no_show
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s", id, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointment, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return err
	}

	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: appointment id=%s cannot move from %s to %s", id, appointment.Status, newStatus)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found during update", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}
