package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgCannotCancel         = "запись не может быть отменена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.AppointmentID(r)
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Тело необязательно: пустой запрос означает отмену без причины
	var req CancelAppointmentRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	err = h.service.Cancel(r.Context(), appointmentID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Cannot cancel: id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/cancel - Failed to cancel appointment: id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/cancel - Appointment cancelled: id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
