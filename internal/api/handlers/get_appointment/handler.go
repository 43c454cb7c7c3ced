package get_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
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

// Handle GET /api/v1/admin/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.AppointmentID(r)
	if err != nil {
		h.logger.Warn("GET /admin/appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	appointment, err := h.service.GetByID(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /admin/appointments/{id} - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/appointments/{id} - Failed to get appointment: id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments/{id} - Appointment retrieved: id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
