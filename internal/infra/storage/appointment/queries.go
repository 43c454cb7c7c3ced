package appointment

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/psqlbuilder"
)

const table = "appointments"

var appointmentColumns = []string{
	"id",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_key",
	"service_name",
	"patient_name",
	"phone",
	"email",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// dateParam передает дату строкой, чтобы часовой пояс сессии не сдвигал день
func dateParam(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// buildFetchDayQuery строит выборку активных записей на день
// В транзакции строки блокируются (FOR UPDATE)
func buildFetchDayQuery(date time.Time, lock bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select("appointment_date", "start_time", "duration_minutes").
		From(table).
		Where(squirrel.Eq{"appointment_date": dateParam(date)}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("start_time ASC")

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

// buildDayQuery строит выборку записей на день для back office
func buildDayQuery(filter domain.DayAppointmentsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(table).
		Where(squirrel.Eq{"appointment_date": dateParam(filter.Date)})

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	return selectBuilder.OrderBy("start_time ASC", "created_at ASC").ToSql()
}

func buildInsertQuery(a *domain.Appointment) (string, []interface{}, error) {
	return psqlbuilder.Insert(table).
		Columns(
			"id",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_key",
			"service_name",
			"patient_name",
			"phone",
			"email",
			"notes",
		).
		Values(
			a.ID,
			dateParam(a.Date),
			a.StartTime,
			a.DurationMinutes,
			string(a.Status),
			a.ServiceKey,
			a.ServiceName,
			a.PatientName,
			a.Phone,
			a.Email,
			a.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

// buildCancelQuery отменяет только записи, которые еще можно отменить
func buildCancelQuery(id uuid.UUID, reason string) (string, []interface{}, error) {
	var reasonValue interface{}
	if reason != "" {
		reasonValue = reason
	}

	return psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancellation_reason", reasonValue).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}).
		ToSql()
}
