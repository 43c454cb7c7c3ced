package get_available_slots

import (
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// evaluateSlots проверяет каждого кандидата тем же валидатором, что и создание записи
// Снимок записей один на весь день, поэтому ответ согласован внутри себя
func evaluateSlots(
	validator *availability.Validator,
	candidates []types.TimeString,
	date time.Time,
	service domain.ServiceCatalogEntry,
	existing []domain.ExistingAppointment,
	now time.Time,
) []Slot {
	result := make([]Slot, len(candidates))

	for i, start := range candidates {
		verdict := validator.Evaluate(availability.Request{
			Date:       date,
			StartTime:  start,
			ServiceKey: service.Key,
		}, existing, now)

		// Если конец услуги выходит за сутки, оставляем пустым
		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			end = ""
		}

		slot := Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: service.DurationMinutes,
			Available:       verdict.IsAccepted(),
		}
		if !slot.Available {
			slot.Reason = verdict
		}
		result[i] = slot
	}

	return result
}
