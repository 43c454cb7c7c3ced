package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	createAppointment "github.com/m04kA/DentalLab-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput         = "некорректные данные записи"
	msgServiceNotFound      = "услуга не найдена"
	msgExcludedDate         = "клиника не работает в выбранную дату"
	msgOutsideBusinessHours = "услуга не помещается в рабочие часы"
	msgOutsideAdvanceWindow = "время записи вне допустимого окна бронирования"
	msgSlotNotAvailable     = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		var pe *parseError
		if errors.As(err, &pe) && pe.field == "startTime" {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrUnknownService):
			h.logger.Warn("POST /appointments - Unknown service: service=%s", req.ServiceKey)
			handlers.RespondErrorCode(w, http.StatusNotFound,
				domain.ValidationRejectedUnknownService.String(), msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrExcludedDate):
			h.logger.Warn("POST /appointments - Excluded date: date=%s", req.Date)
			handlers.RespondErrorCode(w, http.StatusBadRequest,
				domain.ValidationRejectedExcludedDate.String(), msgExcludedDate)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: date=%s, start=%s, service=%s",
				req.Date, req.StartTime, req.ServiceKey)
			handlers.RespondErrorCode(w, http.StatusBadRequest,
				domain.ValidationRejectedOutsideBusinessHours.String(), msgOutsideBusinessHours)

		case errors.Is(err, createAppointment.ErrOutsideAdvanceWindow):
			h.logger.Warn("POST /appointments - Outside booking window: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondErrorCode(w, http.StatusBadRequest,
				domain.ValidationRejectedOutsideAdvanceWindow.String(), msgOutsideAdvanceWindow)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: date=%s, start=%s, service=%s",
				req.Date, req.StartTime, req.ServiceKey)
			handlers.RespondErrorCode(w, http.StatusConflict,
				domain.ValidationRejectedConflict.String(), msgSlotNotAvailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, start=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, date=%s, start=%s, service=%s",
		result.ID, req.Date, req.StartTime, result.ServiceKey)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
