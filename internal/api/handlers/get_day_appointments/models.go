package get_day_appointments

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/internal/service/appointments/models"
)

// ParseQuery собирает запрос сервиса из query параметров date, status, includeInactive
func ParseQuery(query url.Values) (*models.GetDayAppointmentsRequest, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &models.GetDayAppointmentsRequest{Date: date}

	if status := strings.TrimSpace(query.Get("status")); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
