package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/dbmetrics"
	"github.com/m04kA/DentalLab-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий записей в PostgreSQL
type Repository struct {
	db       DBExecutor
	location *time.Location
}

// NewRepository создает новый экземпляр репозитория записей
// location - часовой пояс клиники, в нем возвращаются даты записей
func NewRepository(db DBExecutor, location *time.Location) *Repository {
	if location == nil {
		location = time.UTC
	}
	return &Repository{db: db, location: location}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Пересечение с активной записью отклоняется индексами и возвращается как domain.ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}

	query, args, err := buildInsertQuery(appointment)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isSlotTaken(err) {
			return nil, fmt.Errorf("%w: Create - %s %s: %w",
				domain.ErrSlotTaken, dateParam(appointment.Date), appointment.StartTime, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrAppointmentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetByDate получает записи на день в порядке времени начала
func (r *Repository) GetByDate(ctx context.Context, filter domain.DayAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildDayQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// FetchAppointmentsForDate возвращает активные записи на день для проверки пересечений
// Внутри транзакции строки блокируются до ее завершения
func (r *Repository) FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFetchDayQuery(date, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: FetchAppointmentsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchAppointmentsForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	existing := make([]domain.ExistingAppointment, 0)
	for rows.Next() {
		var appt domain.ExistingAppointment
		if err := rows.Scan(&appt.Date, &appt.StartTime, &appt.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: FetchAppointmentsForDate - scan row: %v", ErrScanRow, err)
		}
		appt.Date = r.day(appt.Date)
		existing = append(existing, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchAppointmentsForDate - rows error: %w", ErrScanRow, err)
	}

	return existing, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", id, query, args)
}

// Cancel отменяет запись с указанием причины
// Отмененная запись перестает участвовать в проверке пересечений
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCancelQuery(id, reason)
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", id, query, args)
}

func (r *Repository) execAffectingOne(
	ctx context.Context,
	executor DBExecutor,
	op string,
	id uuid.UUID,
	query string,
	args []interface{},
) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%s", domain.ErrAppointmentNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует строку в запись
func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.DurationMinutes,
		&status,
		&appointment.ServiceKey,
		&appointment.ServiceName,
		&appointment.PatientName,
		&appointment.Phone,
		&appointment.Email,
		&appointment.Notes,
		&appointment.CancellationReason,
		&appointment.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Status = domain.AppointmentStatus(status)
	appointment.Date = r.day(appointment.Date)
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// day переносит дату из колонки DATE в часовой пояс клиники
func (r *Repository) day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.location)
}

func isSlotTaken(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation || pqErr.Code == pqExclusionViolation
	}
	return false
}
