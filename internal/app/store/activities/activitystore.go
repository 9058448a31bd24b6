package activitystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/heartfund/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activities")}
}

var (
	ErrNotFound = errors.New("activity not found")

	// ErrInvalid wraps every field validation failure so callers can
	// map the whole family to a single bad-request response.
	ErrInvalid = errors.New("invalid activity")

	errMissingTitle     = fmt.Errorf("%w: title is required", ErrInvalid)
	errMissingOrganizer = fmt.Errorf("%w: organizer is required", ErrInvalid)
	errMissingLocation  = fmt.Errorf("%w: location is required", ErrInvalid)
	errEmptyCategory    = fmt.Errorf("%w: at least one category is required", ErrInvalid)
)

// Create inserts a new volunteer activity after validating required fields.
func (s *Store) Create(ctx context.Context, a models.Activity) (models.Activity, error) {
	if a.Title == "" {
		return models.Activity{}, errMissingTitle
	}
	if a.Organizer == "" {
		return models.Activity{}, errMissingOrganizer
	}
	if a.Location == "" {
		return models.Activity{}, errMissingLocation
	}
	if len(a.Category) == 0 {
		return models.Activity{}, errEmptyCategory
	}

	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// Update holds the mutable fields of an activity.
type Update struct {
	Title            string
	Description      string
	Organizer        string
	Category         []string
	ImageURLs        []string
	Date             time.Time
	Time             string
	Location         string
	IsActive         bool
	ShowParticipants bool
}

// Apply sets the enumerated fields on the activity document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if upd.Title == "" {
		return errMissingTitle
	}
	if len(upd.Category) == 0 {
		return errEmptyCategory
	}

	set := bson.M{
		"title":             upd.Title,
		"description":       upd.Description,
		"organizer":         upd.Organizer,
		"category":          upd.Category,
		"image_urls":        upd.ImageURLs,
		"date":              upd.Date,
		"time":              upd.Time,
		"location":          upd.Location,
		"is_active":         upd.IsActive,
		"show_participants": upd.ShowParticipants,
		"updated_at":        time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an activity. Participations referencing it are not
// cascade deleted; reports tolerate the dangling reference.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads an activity by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var a models.Activity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns activities newest-first. When activeOnly is set, inactive
// activities are filtered out.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Activity, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
