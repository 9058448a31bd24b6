// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the local identity record for an externally authenticated user.
//
// NOTE:
//   - ExternalID is the identity provider's stable user identifier and is
//     the uniqueness key for identity resolution (not email).
//   - Users are auto-provisioned on first successful sign-in and never
//     deleted in the normal flow.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID string             `bson:"external_id" json:"external_id"`
	UserName   string             `bson:"user_name" json:"user_name"`
	Email      string             `bson:"email" json:"email"`
	ProfilePic string             `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	IsAdmin    bool               `bson:"is_admin" json:"is_admin"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
