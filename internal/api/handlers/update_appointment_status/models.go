package update_appointment_status

import (
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed | completed | no_show
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{Status: r.Status}
}
