package mongo

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weekTemplateCollectionName = "week_templates"

// mongoWeekTemplateRepository implements repository.WeekTemplateRepository.
// One document per owner.
type mongoWeekTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekTemplateRepository creates a new WeekTemplate repository.
func NewMongoWeekTemplateRepository(db *mongo.Database) repository.WeekTemplateRepository {
	return &mongoWeekTemplateRepository{
		collection: db.Collection(weekTemplateCollectionName),
	}
}

// Load returns the owner's template set, or an empty one.
func (r *mongoWeekTemplateRepository) Load(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error) {
	var set domain.WeekTemplateSet
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.WeekTemplateSet{OwnerID: ownerID, Weeks: []domain.WeekTemplate{}}, nil
		}
		return nil, err
	}
	if set.Weeks == nil {
		set.Weeks = []domain.WeekTemplate{}
	}
	return &set, nil
}

// Save replaces the owner's template set, creating it on first save.
func (r *mongoWeekTemplateRepository) Save(ctx context.Context, set *domain.WeekTemplateSet) error {
	if set.OwnerID == "" {
		return fmt.Errorf("%w: template set requires ownerId", repository.ErrInvalidInput)
	}
	filter := bson.M{"ownerId": set.OwnerID}
	_, err := r.collection.ReplaceOne(ctx, filter, set, options.Replace().SetUpsert(true))
	return err
}

// EnsureWeekTemplateIndexes creates necessary indexes. Call during startup.
func EnsureWeekTemplateIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
