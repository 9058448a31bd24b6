package userstore

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - ExternalID / external_id: The identity provider's stable user identifier

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/heartfund/internal/app/system/normalize"
	"github.com/dalemusser/heartfund/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Identity is the verified identity supplied by the external provider.
type Identity struct {
	ExternalID string
	Username   string // may be empty; see username fallback in EnsureFromIdentity
	Email      string
	AvatarURL  string
	FirstName  string
	LastName   string
}

var errMissingExternalID = errors.New("identity has no external id")

// EnsureFromIdentity returns the local user for an authenticated external
// identity, creating one on first sight. Lookup is by external_id, which is
// the uniqueness key (not email). Repeated calls with the same identity
// return the same record.
//
// Username fallback: supplied username, else "first last" (trimmed), else
// the local part of the email before "@".
func (s *Store) EnsureFromIdentity(ctx context.Context, ident Identity) (models.User, error) {
	if ident.ExternalID == "" {
		return models.User{}, errMissingExternalID
	}

	var existing models.User
	err := s.c.FindOne(ctx, bson.M{"external_id": ident.ExternalID}).Decode(&existing)
	if err == nil {
		return existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	username := strings.TrimSpace(ident.Username)
	if username == "" {
		username = normalize.Name(ident.FirstName + " " + ident.LastName)
	}
	if username == "" {
		email := normalize.Email(ident.Email)
		if at := strings.Index(email, "@"); at > 0 {
			username = email[:at]
		} else {
			username = email
		}
	}

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		ExternalID: ident.ExternalID,
		UserName:   username,
		Email:      normalize.Email(ident.Email),
		ProfilePic: ident.AvatarURL,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Concurrent first sign-in created the record; read it back.
			var raced models.User
			if ferr := s.c.FindOne(ctx, bson.M{"external_id": ident.ExternalID}).Decode(&raced); ferr == nil {
				return raced, nil
			}
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByExternalID loads a user by the identity provider's identifier.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetAdminByEmail promotes the user with the given email to administrator.
// Used at startup to bootstrap the first admin. Missing user is not an
// error; promotion happens when they first sign in and the hook runs again.
func (s *Store) SetAdminByEmail(ctx context.Context, email string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"is_admin": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// List returns all users, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
