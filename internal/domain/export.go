package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanExport stores metadata about a plan export uploaded to object storage.
type PlanExport struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingPlanID primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	OwnerID        string             `bson:"ownerId" json:"ownerId"`
	ObjectKey      string             `bson:"objectKey" json:"objectKey"` // Key in the S3 bucket
	ContentType    string             `bson:"contentType" json:"contentType"`
	Size           int64              `bson:"size" json:"size"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
