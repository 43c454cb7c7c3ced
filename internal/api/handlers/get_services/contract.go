package get_services

import (
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
)

type ServiceCatalog interface {
	All() []domain.ServiceCatalogEntry
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
