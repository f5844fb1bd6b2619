// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/repository"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// CreateMany inserts all workouts of a plan in one ordered batch. IDs and
// CreatedAt are set on the passed slice.
func (r *mongoWorkoutRepository) CreateMany(ctx context.Context, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(workouts))
	for i := range workouts {
		w := &workouts[i]
		if w.TrainingPlanID == primitive.NilObjectID || w.OwnerID == "" || w.Name == "" {
			return fmt.Errorf("%w: workout %d requires trainingPlanId, ownerId and name", repository.ErrInvalidInput, i)
		}
		w.ID = primitive.NewObjectID()
		w.CreatedAt = now
		docs = append(docs, w)
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// GetByPlanID retrieves all workouts of a plan in schedule order.
func (r *mongoWorkoutRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error) {
	workouts := []domain.Workout{}
	filter := bson.M{"trainingPlanId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// DeleteByPlanID removes every workout of a plan and reports how many went.
func (r *mongoWorkoutRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"trainingPlanId": planID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}, {Key: "sequence", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Upcoming workouts of a runner across plans
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
