package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	store  Pinger
	driver string
	logger Logger
}

func NewHandler(store Pinger, driver string, logger Logger) *Handler {
	return &Handler{store: store, driver: driver, logger: logger}
}

type Response struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.store.PingContext(ctx); err != nil {
		h.logger.Warn("GET /healthz - Storage %s unavailable: %v", h.driver, err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable", Storage: h.driver})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok", Storage: h.driver})
}
