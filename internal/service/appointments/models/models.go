package models

import (
	"errors"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetDayAppointmentsRequest запрос на получение записей за день
type GetDayAppointmentsRequest struct {
	Date            time.Time `json:"date"`
	Status          *string   `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDayAppointmentsRequest) ToDomainFilter() (domain.DayAppointmentsFilter, error) {
	filter := domain.DayAppointmentsFilter{
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные услуги
	ServiceKey  string `json:"serviceKey"`
	ServiceName string `json:"serviceName"`

	PatientName string  `json:"patientName"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID.String(),
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime().String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceKey:         a.ServiceKey,
		ServiceName:        a.ServiceName,
		PatientName:        a.PatientName,
		Phone:              a.Phone,
		Email:              a.Email,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(date time.Time, appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Date:         date.Format(domain.DateFormat),
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp.Appointments = append(resp.Appointments, *appointmentResp)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s, ok := domain.ParseStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
