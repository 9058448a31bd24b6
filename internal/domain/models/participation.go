// internal/domain/models/participation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participation statuses. Cancellation is a status, not a deletion: a
// cancelled participation stays in the collection and may be reactivated
// by a later join.
const (
	StatusRegistered = "registered"
	StatusAttended   = "attended"
	StatusCancelled  = "cancelled"
)

// ValidParticipationStatus reports whether s is one of the three statuses.
func ValidParticipationStatus(s string) bool {
	return s == StatusRegistered || s == StatusAttended || s == StatusCancelled
}

// Participation links a user to a volunteer activity.
//
// Invariant: at most one non-cancelled participation exists per
// (user, activity) pair at any time. The participation store enforces this
// by reactivating a cancelled record instead of inserting a second one.
type Participation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	ActivityID   primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	Status       string             `bson:"status" json:"status"`
	PhoneNumber  string             `bson:"phone_number" json:"phone_number"`
	RegisteredAt time.Time          `bson:"registered_at" json:"registered_at"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
