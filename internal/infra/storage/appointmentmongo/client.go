package appointmentmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri string, connectTimeout time.Duration) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	if connectTimeout > 0 {
		clientOptions.SetConnectTimeout(connectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %w", ErrConnect, err)
	}

	return client, nil
}
