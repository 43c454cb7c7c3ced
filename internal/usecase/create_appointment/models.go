package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	ServiceKey  string           // Ключ услуги из каталога
	PatientName string           // Имя пациента
	Phone       string           // Телефон пациента
	Email       *string          // Email (опционально)
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID        // ID созданной записи
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные услуги
	ServiceKey  string
	ServiceName string

	PatientName string
	Phone       string
	Email       *string
	Notes       *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
