package appointmentmongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes создает индексы коллекции appointments
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		// Одна активная запись на время начала
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("active_slot_uniq").
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		// Основной сценарий: записи на день по времени
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "active", Value: 1}, {Key: "startMinutes", Value: 1}},
			Options: options.Index().SetName("date_active_start_idx"),
		},
	}

	if _, err := r.appointments.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("%w: failed to create appointment indexes: %w", ErrQuery, err)
	}
	return nil
}
