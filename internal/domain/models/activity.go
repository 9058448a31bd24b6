// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a volunteer event users can register for.
// Time is the display time of day (e.g. "14:00"); Date carries the day.
type Activity struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	Organizer        string             `bson:"organizer" json:"organizer"`
	Category         []string           `bson:"category" json:"category"`
	ImageURLs        []string           `bson:"image_urls,omitempty" json:"image_urls,omitempty"`
	Date             time.Time          `bson:"date" json:"date"`
	Time             string             `bson:"time" json:"time"`
	Location         string             `bson:"location" json:"location"`
	IsActive         bool               `bson:"is_active" json:"is_active"`
	ShowParticipants bool               `bson:"show_participants" json:"show_participants"`
	CreatedBy        primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
