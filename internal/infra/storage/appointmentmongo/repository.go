package appointmentmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

const (
	appointmentsCollection = "appointments"
	dayLocksCollection     = "appointment_day_locks"
)

// Repository репозиторий записей в MongoDB
type Repository struct {
	appointments *mongo.Collection
	dayLocks     *mongo.Collection
	location     *time.Location
	now          func() time.Time
}

// NewRepository создает репозиторий поверх базы db
// location - часовой пояс клиники, в нем возвращаются даты записей
func NewRepository(db *mongo.Database, location *time.Location) *Repository {
	if location == nil {
		location = time.UTC
	}
	return &Repository{
		appointments: db.Collection(appointmentsCollection),
		dayLocks:     db.Collection(dayLocksCollection),
		location:     location,
		now:          time.Now,
	}
}

// Create сохраняет запись
// Частичный уникальный индекс отклоняет вторую активную запись на то же время
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := r.now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if _, err := r.appointments.InsertOne(ctx, toDocument(appointment)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: Create - %s %s: %w",
				domain.ErrSlotTaken, appointment.Date.Format(domain.DateFormat), appointment.StartTime, err)
		}
		return nil, fmt.Errorf("%w: Create - insert: %w", ErrQuery, err)
	}

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var doc appointmentDocument
	err := r.appointments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: id=%s", domain.ErrAppointmentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find: %w", ErrQuery, err)
	}

	appointment, err := doc.toDomain(r.location)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrDecode, err)
	}
	return appointment, nil
}

// GetByDate получает записи на день в порядке времени начала
func (r *Repository) GetByDate(ctx context.Context, filter domain.DayAppointmentsFilter) ([]*domain.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startMinutes", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.appointments.Find(ctx, dayFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - find: %w", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - %v", ErrDecode, err)
	}

	appointments := make([]*domain.Appointment, 0, len(docs))
	for _, doc := range docs {
		appointment, err := doc.toDomain(r.location)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - %v", ErrDecode, err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

// FetchAppointmentsForDate возвращает активные записи на день для проверки пересечений
// Внутри транзакции сначала изменяется документ-блокировка дня: параллельные
// транзакции на тот же день получают write conflict и повторяются
func (r *Repository) FetchAppointmentsForDate(ctx context.Context, date time.Time) ([]domain.ExistingAppointment, error) {
	if mongo.SessionFromContext(ctx) != nil {
		if err := r.lockDay(ctx, date); err != nil {
			return nil, err
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startMinutes", Value: 1}}).
		SetProjection(bson.M{"date": 1, "startTime": 1, "durationMinutes": 1})

	cursor, err := r.appointments.Find(ctx, activeDayFilter(date), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchAppointmentsForDate - find: %w", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: FetchAppointmentsForDate - %w", ErrDecode, err)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.location)
	existing := make([]domain.ExistingAppointment, 0, len(docs))
	for _, doc := range docs {
		start, err := types.NewTimeStringFromString(doc.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchAppointmentsForDate - %v", ErrDecode, err)
		}
		existing = append(existing, domain.ExistingAppointment{
			Date:            day,
			StartTime:       start,
			DurationMinutes: doc.DurationMinutes,
		})
	}

	return existing, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	probe := domain.Appointment{Status: status}
	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"active":    probe.IsActive(),
		"updatedAt": r.now().UTC(),
	}}

	res, err := r.appointments.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - update: %w", ErrQuery, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: id=%s", domain.ErrAppointmentNotFound, id)
	}
	return nil
}

// Cancel отменяет запись и освобождает ее время
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	now := r.now().UTC()
	set := bson.M{
		"status":      string(domain.StatusCancelled),
		"active":      false,
		"cancelledAt": now,
		"updatedAt":   now,
	}
	if reason != "" {
		set["cancellationReason"] = reason
	}

	filter := bson.M{
		"_id":    id.String(),
		"status": bson.M{"$in": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}},
	}

	res, err := r.appointments.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: Cancel - update: %w", ErrQuery, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: id=%s", domain.ErrAppointmentNotFound, id)
	}
	return nil
}

// PingContext проверяет доступность primary
func (r *Repository) PingContext(ctx context.Context) error {
	return r.appointments.Database().Client().Ping(ctx, readpref.Primary())
}

// lockDay upsert документа дня с инкрементом версии
func (r *Repository) lockDay(ctx context.Context, date time.Time) error {
	_, err := r.dayLocks.UpdateOne(ctx,
		bson.M{"_id": date.Format(domain.DateFormat)},
		bson.M{"$inc": bson.M{"version": 1}, "$set": bson.M{"lockedAt": r.now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: lockDay %s: %w", ErrTransaction, date.Format(domain.DateFormat), err)
	}
	return nil
}
