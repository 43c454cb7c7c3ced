package appointmentmongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// TransactionManager выполняет функции в транзакциях MongoDB
// Требует replica set; транзиентные ошибки повторяет драйвер (WithTransaction)
type TransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) *TransactionManager {
	return &TransactionManager{client: client}
}

// DoSerializable выполняет fn в транзакции со snapshot чтением и majority записью
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов: используем уже открытую сессию
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: could not start mongo session: %w", ErrTransaction, err)
	}
	defer session.EndSession(ctx)

	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, opts)

	return err
}
