package campaignstore

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
	return &Store{c: db.Collection("campaigns")}
}

var (
	ErrNotFound = errors.New("campaign not found")

	// ErrInvalid wraps every field validation failure so callers can
	// map the whole family to a single bad-request response.
	ErrInvalid = errors.New("invalid campaign")

	errMissingName      = fmt.Errorf("%w: name is required", ErrInvalid)
	errMissingOrganizer = fmt.Errorf("%w: organizer is required", ErrInvalid)
	errEmptyCategory    = fmt.Errorf("%w: at least one category is required", ErrInvalid)
	errBadTarget        = fmt.Errorf("%w: target amount must be positive", ErrInvalid)
)

// Create inserts a new campaign after validating required fields.
// CollectedAmount always starts at zero regardless of input.
func (s *Store) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	if c.Name == "" {
		return models.Campaign{}, errMissingName
	}
	if c.Organizer == "" {
		return models.Campaign{}, errMissingOrganizer
	}
	if len(c.Category) == 0 {
		return models.Campaign{}, errEmptyCategory
	}
	if c.TargetAmount <= 0 {
		return models.Campaign{}, errBadTarget
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CollectedAmount = 0
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Campaign{}, err
	}
	return c, nil
}

// Update holds the mutable fields of a campaign. The collected amount is
// deliberately absent: only the donation ledger may touch it.
type Update struct {
	Name         string
	Description  string
	Organizer    string
	Category     []string
	TargetAmount int64
	Images       []string
	StartDate    time.Time
	EndDate      *time.Time
	IsActive     bool
	ShowDonors   bool
}

// Apply sets the enumerated fields on the campaign document. Unknown or
// unlisted fields cannot be injected through this path.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if upd.Name == "" {
		return errMissingName
	}
	if len(upd.Category) == 0 {
		return errEmptyCategory
	}

	set := bson.M{
		"name":          upd.Name,
		"description":   upd.Description,
		"organizer":     upd.Organizer,
		"category":      upd.Category,
		"target_amount": upd.TargetAmount,
		"images":        upd.Images,
		"start_date":    upd.StartDate,
		"end_date":      upd.EndDate,
		"is_active":     upd.IsActive,
		"show_donors":   upd.ShowDonors,
		"updated_at":    time.Now().UTC(),
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

// Delete removes a campaign. Donations referencing it are not cascade
// deleted; reports tolerate the dangling reference.
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

// GetByID loads a campaign by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var c models.Campaign
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns campaigns newest-first. When activeOnly is set, inactive
// campaigns are filtered out.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Campaign, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Campaign
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recent returns the most recently created campaigns up to limit.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.Campaign, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Campaign
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
