package cancel_appointment

import (
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() *models.CancelAppointmentRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelAppointmentRequest{Reason: reason}
}
