// internal/domain/models/campaign.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign is a fundraising effort.
//
// CollectedAmount is mutated exclusively by the donation ledger (an atomic
// $inc per confirmed donation) and is monotonically non-decreasing under
// normal operation. Amounts are whole currency units.
type Campaign struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	Organizer       string             `bson:"organizer" json:"organizer"`
	Category        []string           `bson:"category" json:"category"`
	TargetAmount    int64              `bson:"target_amount" json:"target_amount"`
	CollectedAmount int64              `bson:"collected_amount" json:"collected_amount"`
	Images          []string           `bson:"images,omitempty" json:"images,omitempty"`
	StartDate       time.Time          `bson:"start_date" json:"start_date"`
	EndDate         *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	IsActive        bool               `bson:"is_active" json:"is_active"`
	ShowDonors      bool               `bson:"show_donors" json:"show_donors"`
	CreatedBy       primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
