package get_services

import (
	"net/http"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
)

type Handler struct {
	catalog ServiceCatalog
	logger  Logger
}

func NewHandler(catalog ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.All()

	h.logger.Info("GET /services - Catalog retrieved: count=%d", len(entries))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(entries))
}
