package get_services

import (
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
}

// ServicesResponse список услуг каталога
type ServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

func FromDomain(entries []domain.ServiceCatalogEntry) *ServicesResponse {
	resp := &ServicesResponse{Services: make([]ServiceResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Services = append(resp.Services, ServiceResponse{
			Key:             e.Key,
			Name:            e.Name,
			DurationMinutes: e.DurationMinutes,
			Description:     e.Description,
		})
	}
	return resp
}
