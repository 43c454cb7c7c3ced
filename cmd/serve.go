package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cancelAppointmentHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/get_available_slots"
	getDayAppointmentsHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/get_day_appointments"
	getServicesHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/get_services"
	healthHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/health"
	updateAppointmentStatusHandler "github.com/m04kA/DentalLab-BookingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/DentalLab-BookingService/internal/api/middleware"
	appointmentsService "github.com/m04kA/DentalLab-BookingService/internal/service/appointments"
	createAppointmentUC "github.com/m04kA/DentalLab-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/DentalLab-BookingService/internal/usecase/get_available_slots"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap(ctx, configPath, bootstrapOptions{withMetrics: true, autoMigrate: true})
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.cfg
	log := app.log
	log.Info("Starting DentalLab-BookingService (storage=%s)...", cfg.Storage.Driver)

	router, err := newRouter(ctx, app)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

func newRouter(ctx context.Context, app *application) (*mux.Router, error) {
	cfg := app.cfg
	log := app.log

	// Сервисы и use cases
	appointmentSvc := appointmentsService.NewService(app.store, app.policy, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(app.store, app.validator, app.txManager, app.metrics, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(app.store, app.validator, app.generator, log)

	// Handlers
	getServices := getServicesHandler.NewHandler(app.catalog, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getDayAppointments := getDayAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	health := healthHandler.NewHandler(app.pinger, cfg.Storage.Driver, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if app.metrics != nil {
		r.Use(middleware.MetricsMiddleware(app.metrics, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	var createHandler http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		limiter, err := app.rateLimiter(ctx)
		if err != nil {
			return nil, err
		}
		createHandler = middleware.RateLimit(limiter, middleware.ClientKey(cfg.RateLimit.TrustForwardedFor), app.metrics, cfg.RateLimit.FailOpen, log)(createHandler)
	}
	api.Handle("/appointments", createHandler).Methods(http.MethodPost)

	// ============================================================
	// BACK OFFICE ROUTES (X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not configured, back office routes are disabled")
	}

	admin.HandleFunc("/appointments", getDayAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	return r, nil
}
