package mongo

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planExportCollectionName = "plan_exports"

// mongoPlanExportRepository implements repository.PlanExportRepository
type mongoPlanExportRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanExportRepository creates a new PlanExport repository backed by MongoDB.
func NewMongoPlanExportRepository(db *mongo.Database) repository.PlanExportRepository {
	return &mongoPlanExportRepository{
		collection: db.Collection(planExportCollectionName),
	}
}

// Create inserts export metadata into the database.
func (r *mongoPlanExportRepository) Create(ctx context.Context, export *domain.PlanExport) (primitive.ObjectID, error) {
	if export.TrainingPlanID == primitive.NilObjectID || export.OwnerID == "" || export.ObjectKey == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: export requires trainingPlanId, ownerId and objectKey", repository.ErrInvalidInput)
	}

	export.ID = primitive.NewObjectID()
	export.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, export)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByPlanID lists the exports of a plan, newest first.
func (r *mongoPlanExportRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanExport, error) {
	exports := []domain.PlanExport{}
	filter := bson.M{"trainingPlanId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exports); err != nil {
		return nil, err
	}
	return exports, nil
}

// DeleteByPlanID removes the export metadata of a plan. The objects themselves
// are deleted from storage by the caller.
func (r *mongoPlanExportRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"trainingPlanId": planID})
	return err
}

// EnsurePlanExportIndexes creates necessary indexes for the plan_exports collection.
func EnsurePlanExportIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// S3 keys are unique within the bucket
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
