package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/DentalLab-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingService  = "услуга обязательна"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound = "услуга не найдена"
	msgPastDate        = "дата в прошлом"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: service (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceKey := strings.TrimSpace(query.Get("service"))
	if serviceKey == "" {
		h.logger.Warn("GET /available-slots - Missing service")
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceKey, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service=%s", serviceKey)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service=%s, date=%s, error=%v",
				serviceKey, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: service=%s, date=%s, available=%d/%d",
		serviceKey, dateStr, result.AvailableCount(), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
