package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/DentalLab-BookingService/internal/api/middleware"
	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/config"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DentalLab-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DentalLab-BookingService/internal/infra/storage/appointmentmongo"
	catalogRepo "github.com/m04kA/DentalLab-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/DentalLab-BookingService/internal/infra/storage/migrations"
	"github.com/m04kA/DentalLab-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DentalLab-BookingService/pkg/logger"
	"github.com/m04kA/DentalLab-BookingService/pkg/metrics"
	"github.com/m04kA/DentalLab-BookingService/pkg/txmanager"
)

// appointmentStore общий контракт postgres и mongo хранилищ
type appointmentStore interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByDate(ctx context.Context, filter domain.DayAppointmentsFilter) ([]*domain.Appointment, error)
	FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// application собранные зависимости, общие для serve и CLI команд
type application struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics

	policy    *availability.CalendarPolicy
	catalog   *availability.ServiceCatalog
	validator *availability.Validator
	generator *availability.SlotGenerator

	store     appointmentStore
	txManager txManager
	pinger    pinger

	// только для postgres
	db *dbmetrics.DB

	stopMetricsCh chan struct{}
	closers       []func() error
}

type bootstrapOptions struct {
	withMetrics bool
	// migrate применяет схему безусловно, autoMigrate только при database.auto_migrate
	migrate     bool
	autoMigrate bool
	logLevel    string // переопределяет logs.level
}

// cliLogLevel оставляет в выводе CLI команд только ошибки
const cliLogLevel = "error"

// bootstrap загружает конфигурацию, подключается к хранилищу и собирает движок доступности
func bootstrap(ctx context.Context, configPath string, opts bootstrapOptions) (*application, error) {
	// 1. Конфигурация
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Логгер
	level := cfg.Logs.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log, err := logger.New(cfg.Logs.File, level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &application{
		cfg:           cfg,
		log:           log,
		stopMetricsCh: make(chan struct{}),
	}
	app.closers = append(app.closers, log.Close)

	// 3. Метрики
	if opts.withMetrics && cfg.Metrics.Enabled {
		app.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// 4. Календарная политика
	location, err := cfg.Clinic.Location()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load clinic timezone: %w", err)
	}

	exclusion, err := domain.NewCalendarExclusion(cfg.Clinic.ExcludedWeekdays, cfg.Clinic.Holidays)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.policy, err = availability.NewCalendarPolicy(
		domain.BusinessHours{StartHour: cfg.Clinic.StartHour, EndHour: cfg.Clinic.EndHour},
		exclusion,
		domain.BookingWindow{MinAdvanceHours: cfg.Clinic.MinAdvanceHours, MaxAdvanceDays: cfg.Clinic.MaxAdvanceDays},
		location,
	)
	if err != nil {
		app.Close()
		return nil, err
	}
	log.Info("Calendar policy: %s", app.policy)

	// 5. Хранилище
	migrate := opts.migrate || (opts.autoMigrate && cfg.Database.AutoMigrate)
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		err = app.connectMongo(ctx, location, migrate)
	default:
		err = app.connectPostgres(ctx, location, migrate)
	}
	if err != nil {
		app.Close()
		return nil, err
	}

	// 6. Каталог услуг
	entries := make([]domain.ServiceCatalogEntry, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		entries = append(entries, domain.ServiceCatalogEntry{
			Key:             s.Key,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Description:     s.Description,
		})
	}

	if cfg.Catalog.FromDatabase && app.db != nil {
		dbEntries, err := catalogRepo.NewRepository(app.db).GetAll(ctx)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to load service catalog: %w", err)
		}
		log.Info("Loaded %d services from database", len(dbEntries))
		entries = availability.MergeEntries(entries, dbEntries)
	}

	app.catalog, err = availability.NewServiceCatalog(entries)
	if err != nil {
		app.Close()
		return nil, err
	}
	log.Info("Service catalog ready: %d services", app.catalog.Len())

	// 7. Движок доступности
	app.validator = availability.NewValidator(app.policy, app.catalog, app.store)
	app.generator = availability.NewSlotGenerator(app.policy, cfg.Clinic.SlotStepMinutes)

	return app, nil
}

func (a *application) connectPostgres(ctx context.Context, location *time.Location, migrate bool) error {
	cfg := a.cfg.Database

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	// С nil метриками обёртка только прокидывает запросы
	a.db = dbmetrics.WrapWithDefault(db, a.metrics, a.cfg.Metrics.ServiceName, a.stopMetricsCh)

	if migrate {
		if err := migrations.RunPostgres(ctx, a.db); err != nil {
			return err
		}
		a.log.Info("Database schema is up to date")
	}

	a.store = appointmentRepo.NewRepository(a.db, location)
	a.txManager = txmanager.NewTransactionManager(a.db).WithMaxAttempts(a.cfg.Database.MaxTxAttempts)
	a.pinger = a.db
	return nil
}

func (a *application) connectMongo(ctx context.Context, location *time.Location, migrate bool) error {
	cfg := a.cfg.Mongo

	client, err := appointmentmongo.Connect(ctx, cfg.URI, time.Duration(cfg.ConnectTimeout)*time.Second)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Disconnect(disconnectCtx)
	})
	a.log.Info("Successfully connected to MongoDB (db=%s)", cfg.Database)

	repo := appointmentmongo.NewRepository(client.Database(cfg.Database), location)
	if migrate {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		a.log.Info("MongoDB indexes are up to date")
	}

	a.store = repo
	a.txManager = appointmentmongo.NewTransactionManager(client)
	a.pinger = repo
	return nil
}

// rateLimiter Redis, если он включён, иначе лимитер в памяти процесса
func (a *application) rateLimiter(ctx context.Context) (middleware.Limiter, error) {
	rl := a.cfg.RateLimit
	window := time.Duration(rl.Window) * time.Second

	if !a.cfg.Redis.Enabled {
		a.log.Info("Rate limiter: in-process (%d requests per %s)", rl.Requests, window)
		return middleware.NewLocalLimiter(rl.Requests, window, time.Duration(rl.IdleTTL)*time.Second), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		if !rl.FailOpen {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		a.log.Warn("Redis is unavailable, limiter will fail open: %v", err)
	}

	a.log.Info("Rate limiter: redis %s (%d requests per %s)", a.cfg.Redis.Addr, rl.Requests, window)
	return middleware.NewRedisLimiter(client, rl.Requests, window, rl.Prefix), nil
}

// Close освобождает ресурсы в обратном порядке
func (a *application) Close() {
	select {
	case <-a.stopMetricsCh:
	default:
		close(a.stopMetricsCh)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}
