package get_day_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments"
)

const (
	msgInvalidQuery = "некорректные параметры: ожидается date=YYYY-MM-DD, status, includeInactive=true|false"
	msgInvalidInput = "некорректный фильтр записей"
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

// Handle GET /api/v1/admin/appointments?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetDayAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /admin/appointments - Failed to get appointments: date=%s, error=%v",
				r.URL.Query().Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved: date=%s, count=%d",
		result.Date, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
