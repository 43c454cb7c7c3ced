package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный статус"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "переход в этот статус недопустим"
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

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.AppointmentID(r)
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), appointmentID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid status: id=%s, status=%s", appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/appointments/{id}/status - Invalid transition: id=%s, status=%s", appointmentID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/status - Failed to update status: id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/status - Status updated: id=%s, status=%s", appointmentID, req.Status)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
