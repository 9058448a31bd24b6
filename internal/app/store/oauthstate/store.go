// Package oauthstate persists short-lived OAuth state tokens so the
// login redirect and its callback can be correlated across requests.
package oauthstate

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

type stateDoc struct {
	State     string    `bson:"state"`
	ReturnURL string    `bson:"return_url,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Save stores a state token with its return URL and expiry.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	_, err := s.c.InsertOne(ctx, stateDoc{
		State:     state,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

// Validate consumes a state token. It returns the stored return URL and
// whether the token existed and had not expired. The token is deleted
// either way so it cannot be replayed.
func (s *Store) Validate(ctx context.Context, state string) (returnURL string, valid bool, err error) {
	var doc stateDoc
	ferr := s.c.FindOneAndDelete(ctx, bson.M{"state": state}).Decode(&doc)
	if ferr != nil {
		if ferr == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, ferr
	}
	if time.Now().UTC().After(doc.ExpiresAt) {
		return "", false, nil
	}
	return doc.ReturnURL, true, nil
}
