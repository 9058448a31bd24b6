// Package donationstore is the campaign funding ledger: it records
// immutable donations and applies each confirmed amount to the owning
// campaign's running total.
package donationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/heartfund/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c         *mongo.Collection
	campaigns *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("donations"),
		campaigns: db.Collection("campaigns"),
	}
}

var (
	// ErrInvalidAmount is returned when the donation amount is not positive.
	ErrInvalidAmount = errors.New("donation amount must be positive")

	// ErrCampaignNotFound is returned when the ledger increment matched no
	// campaign. The donation document has already been written at that
	// point; the caller surfaces the error and the orphan record remains
	// (donations are immutable, there is no compensating delete).
	ErrCampaignNotFound = errors.New("campaign not found for donation")
)

// NewDonation carries the fields of a confirmed donation. The payment is
// confirmed by the processor before Record is called; PaymentID is the
// processor's transaction identifier and is stored opaquely.
type NewDonation struct {
	CampaignID primitive.ObjectID
	UserID     primitive.ObjectID
	Amount     int64
	Message    string
	PaymentID  string
}

// Record writes the immutable donation document, then applies the amount
// to the campaign's collected total with a single atomic $inc. The
// increment is not a read-modify-write, so concurrent donations to the
// same campaign cannot lose updates.
//
// The two writes are still not transactional with each other: if the
// increment fails after the insert succeeded, the donation remains
// without a matching ledger increment and the error is returned.
func (s *Store) Record(ctx context.Context, d NewDonation) (models.Donation, error) {
	if d.Amount <= 0 {
		return models.Donation{}, ErrInvalidAmount
	}

	doc := models.Donation{
		ID:         primitive.NewObjectID(),
		CampaignID: d.CampaignID,
		UserID:     d.UserID,
		Amount:     d.Amount,
		Message:    d.Message,
		PaymentID:  d.PaymentID,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.Donation{}, err
	}

	res, err := s.campaigns.UpdateOne(ctx,
		bson.M{"_id": d.CampaignID},
		bson.M{
			"$inc": bson.M{"collected_amount": d.Amount},
			"$set": bson.M{"updated_at": doc.CreatedAt},
		},
	)
	if err != nil {
		return models.Donation{}, err
	}
	if res.MatchedCount == 0 {
		return models.Donation{}, ErrCampaignNotFound
	}

	return doc, nil
}

// ListByCampaign returns a campaign's donations newest-first.
func (s *Store) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]models.Donation, error) {
	return s.list(ctx, bson.M{"campaign_id": campaignID}, 0)
}

// ListByUser returns a user's donations newest-first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Donation, error) {
	return s.list(ctx, bson.M{"user_id": userID}, 0)
}

// Recent returns the most recent donations across all campaigns.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.Donation, error) {
	return s.list(ctx, bson.M{}, limit)
}

func (s *Store) list(ctx context.Context, filter bson.M, limit int64) ([]models.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Donation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
