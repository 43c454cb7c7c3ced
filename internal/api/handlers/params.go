package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AppointmentIDVar имя переменной пути с ID записи
const AppointmentIDVar = "appointmentId"

// AppointmentID извлекает ID записи из пути
func AppointmentID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[AppointmentIDVar])
}
