package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	createAppointment "github.com/m04kA/DentalLab-BookingService/internal/usecase/create_appointment"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date        string  `json:"date"`      // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	ServiceKey  string  `json:"serviceKey"`
	PatientName string  `json:"patientName"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceKey      string  `json:"serviceKey"`
	ServiceName     string  `json:"serviceName"`
	PatientName     string  `json:"patientName"`
	Phone           string  `json:"phone"`
	Email           *string `json:"email,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// parseError ошибка разбора даты или времени
type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, &parseError{field: "date", err: err}
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, &parseError{field: "startTime", err: err}
	}

	return &createAppointment.Request{
		Date:        date,
		StartTime:   startTime,
		ServiceKey:  r.ServiceKey,
		PatientName: r.PatientName,
		Phone:       r.Phone,
		Email:       r.Email,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID.String(),
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceKey:      resp.ServiceKey,
		ServiceName:     resp.ServiceName,
		PatientName:     resp.PatientName,
		Phone:           resp.Phone,
		Email:           resp.Email,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
