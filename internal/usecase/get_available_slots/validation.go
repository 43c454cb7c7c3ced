package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ServiceKey) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше окна записи
func validateDate(date time.Time, now time.Time, policy *availability.CalendarPolicy) error {
	if date.Before(policy.Today(now)) {
		return ErrInvalidDate
	}

	if date.After(policy.LastBookableDay(now)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.BookingWindow().MaxAdvanceDays)
	}

	return nil
}
