package get_available_slots

import (
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/DentalLab-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date            string         `json:"date"`
	ServiceKey      string         `json:"serviceKey"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	Closed          bool           `json:"closed"`
	AvailableCount  int            `json:"availableCount"`
	Slots           []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Available       bool    `json:"available"`
	Reason          *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceKey string, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceKey: serviceKey,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	result := &SlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceKey:      resp.ServiceKey,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Closed:          resp.Closed,
		AvailableCount:  resp.AvailableCount(),
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		s := SlotResponse{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
		if !slot.Available {
			reason := slot.Reason.String()
			s.Reason = &reason
		}
		result.Slots = append(result.Slots, s)
	}

	return result
}
