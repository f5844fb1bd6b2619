package mongo

import (
	"alcyxob/marathon-planner/internal/logger"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// ConnectDB connects to MongoDB and pings the primary before returning.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Connect succeeds lazily, so ping to find an unreachable server now.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), pingTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every planner collection. Failures are
// logged and do not stop the others.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ensure := []struct {
		collection string
		fn         func(context.Context, *mongo.Collection) error
	}{
		{trainingPlanCollectionName, EnsureTrainingPlanIndexes},
		{workoutCollectionName, EnsureWorkoutIndexes},
		{weekTemplateCollectionName, EnsureWeekTemplateIndexes},
		{planExportCollectionName, EnsurePlanExportIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx, db.Collection(e.collection)); err != nil {
			logger.Warn("Failed to create indexes for collection %s: %v", e.collection, err)
			continue
		}
		logger.Debug("Indexes ensured for %s", e.collection)
	}
}
