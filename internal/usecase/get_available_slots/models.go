package get_available_slots

import (
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceKey string    // Ключ услуги из каталога
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Дата в часовом поясе клиники
	ServiceKey      string    // Ключ услуги
	ServiceName     string    // Название услуги
	DurationMinutes int       // Длительность услуги
	Closed          bool      // День не рабочий (выходной или праздник)
	Slots           []Slot    // Кандидаты в порядке возрастания
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString        // Время начала
	EndTime         types.TimeString        // Время окончания услуги (пусто, если выходит за сутки)
	DurationMinutes int                     // Длительность в минутах
	Available       bool                    // Можно ли записаться
	Reason          domain.ValidationResult // Причина недоступности (пусто для доступных)
}

// AvailableCount возвращает число доступных слотов
func (r *Response) AvailableCount() int {
	count := 0
	for _, s := range r.Slots {
		if s.Available {
			count++
		}
	}
	return count
}
