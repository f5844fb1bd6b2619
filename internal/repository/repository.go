package repository

import (
	"alcyxob/marathon-planner/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainingPlanRepository stores plan headers.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByOwner(ctx context.Context, ownerID string) ([]domain.TrainingPlan, error) // newest first
	Delete(ctx context.Context, id primitive.ObjectID, ownerID string) error     // only the owner's plan
}

// WorkoutRepository stores the flat workouts of a plan.
type WorkoutRepository interface {
	CreateMany(ctx context.Context, workouts []domain.Workout) error
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error) // ordered by sequence
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
}

// WeekTemplateRepository stores per-owner template sets. Load returns an
// empty set when the owner has none.
type WeekTemplateRepository interface {
	Load(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error)
	Save(ctx context.Context, set *domain.WeekTemplateSet) error
}

// PlanExportRepository stores metadata of exports uploaded to object storage.
type PlanExportRepository interface {
	Create(ctx context.Context, export *domain.PlanExport) (primitive.ObjectID, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanExport, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}
