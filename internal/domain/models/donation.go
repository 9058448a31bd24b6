// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is an immutable record of funds contributed to a campaign.
// Once written it is never updated or deleted. PaymentID is the payment
// processor's transaction identifier, opaque to this system.
type Donation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampaignID primitive.ObjectID `bson:"campaign_id" json:"campaign_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Amount     int64              `bson:"amount" json:"amount"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	PaymentID  string             `bson:"payment_id" json:"payment_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
