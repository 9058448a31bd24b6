// Package participationstore owns the lifecycle of a user's registration
// for a volunteer activity: join, reactivation, self-service cancellation,
// and organizer/admin status changes.
//
// Invariant: at most one non-cancelled participation exists per
// (user, activity) pair. A cancelled participation is reactivated in place
// by a later join instead of being duplicated, and cancellation is a
// status change, never a delete.
package participationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/heartfund/internal/app/system/normalize"
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
	return &Store{c: db.Collection("participations")}
}

var (
	// ErrAlreadyParticipating is returned by Join when a non-cancelled
	// participation already exists for the (user, activity) pair.
	ErrAlreadyParticipating = errors.New("user has already joined this activity")

	// ErrNotFound is returned when no participation matches the lookup.
	// The self-service cancel path scopes its lookup by both id and owner,
	// so an ownership mismatch also reads as not-found.
	ErrNotFound = errors.New("participation not found")

	// ErrInvalidStatus is returned by SetStatus for a status outside the
	// registered/attended/cancelled enum.
	ErrInvalidStatus = errors.New("invalid participation status")
)

// Join registers the user for an activity.
//
// The raw phone number is normalized (non-digits stripped, leading "+"
// preserved) and validated to 10-15 digits; a validation failure writes
// nothing. If a cancelled participation exists it is reactivated in place
// with the new phone number, keeping the original document id. A live
// participation yields ErrAlreadyParticipating.
func (s *Store) Join(ctx context.Context, activityID, userID primitive.ObjectID, rawPhone string) (models.Participation, error) {
	phone, err := normalize.Phone(rawPhone)
	if err != nil {
		return models.Participation{}, err
	}

	now := time.Now().UTC()

	var existing models.Participation
	ferr := s.c.FindOne(ctx, bson.M{"user_id": userID, "activity_id": activityID}).Decode(&existing)
	switch ferr {
	case nil:
		if existing.Status != models.StatusCancelled {
			return models.Participation{}, ErrAlreadyParticipating
		}
		// Reactivate the cancelled record rather than inserting a second
		// one; this is what preserves the single-active invariant.
		after := options.After
		opts := options.FindOneAndUpdate().SetReturnDocument(after)
		update := bson.M{"$set": bson.M{
			"status":       models.StatusRegistered,
			"phone_number": phone,
			"updated_at":   now,
		}}
		var reactivated models.Participation
		if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": existing.ID}, update, opts).Decode(&reactivated); err != nil {
			return models.Participation{}, err
		}
		return reactivated, nil

	case mongo.ErrNoDocuments:
		p := models.Participation{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			ActivityID:   activityID,
			Status:       models.StatusRegistered,
			PhoneNumber:  phone,
			RegisteredAt: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := s.c.InsertOne(ctx, p); err != nil {
			return models.Participation{}, err
		}
		return p, nil

	default:
		return models.Participation{}, ferr
	}
}

// Cancel is the self-service path: only the owning user may cancel, and
// the filter is scoped by both id and owner so a mismatch yields
// ErrNotFound rather than a forbidden error (information hiding). Calling
// it on an already-cancelled participation re-sets the same status.
func (s *Store) Cancel(ctx context.Context, participationID, userID primitive.ObjectID) (models.Participation, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var p models.Participation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": participationID, "user_id": userID},
		bson.M{"$set": bson.M{"status": models.StatusCancelled, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Participation{}, ErrNotFound
		}
		return models.Participation{}, err
	}
	return p, nil
}

// SetStatus sets the participation status unconditionally to any of the
// three valid values. Authorization (activity creator or administrator)
// is the caller's responsibility; this store only enforces the enum.
func (s *Store) SetStatus(ctx context.Context, participationID primitive.ObjectID, status string) (models.Participation, error) {
	if !models.ValidParticipationStatus(status) {
		return models.Participation{}, ErrInvalidStatus
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var p models.Participation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": participationID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Participation{}, ErrNotFound
		}
		return models.Participation{}, err
	}
	return p, nil
}

// GetByID loads a participation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Participation, error) {
	var p models.Participation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindActive returns the user's non-cancelled participation for the
// activity, or nil if none exists.
func (s *Store) FindActive(ctx context.Context, userID, activityID primitive.ObjectID) (*models.Participation, error) {
	var p models.Participation
	err := s.c.FindOne(ctx, bson.M{
		"user_id":     userID,
		"activity_id": activityID,
		"status":      bson.M{"$ne": models.StatusCancelled},
	}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser returns a user's participations newest-first, optionally
// excluding cancelled ones.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, excludeCancelled bool) ([]models.Participation, error) {
	filter := bson.M{"user_id": userID}
	if excludeCancelled {
		filter["status"] = bson.M{"$ne": models.StatusCancelled}
	}
	return s.list(ctx, filter, 0)
}

// ListByActivity returns an activity's participations newest-first,
// optionally excluding cancelled ones.
func (s *Store) ListByActivity(ctx context.Context, activityID primitive.ObjectID, excludeCancelled bool) ([]models.Participation, error) {
	filter := bson.M{"activity_id": activityID}
	if excludeCancelled {
		filter["status"] = bson.M{"$ne": models.StatusCancelled}
	}
	return s.list(ctx, filter, 0)
}

// RecentByActivity returns the activity's most recent non-cancelled
// participations up to limit.
func (s *Store) RecentByActivity(ctx context.Context, activityID primitive.ObjectID, limit int64) ([]models.Participation, error) {
	return s.list(ctx, bson.M{
		"activity_id": activityID,
		"status":      bson.M{"$ne": models.StatusCancelled},
	}, limit)
}

func (s *Store) list(ctx context.Context, filter bson.M, limit int64) ([]models.Participation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Participation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
