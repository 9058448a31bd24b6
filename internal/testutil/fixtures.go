package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/heartfund/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		ExternalID: "google-" + primitive.NewObjectID().Hex(),
		UserName:   name,
		Email:      email,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create user fixture: %v", err)
	}
	return u
}

// CreateCampaign inserts a test campaign with the given name and target.
func (f *Fixtures) CreateCampaign(ctx context.Context, name string, target int64, createdBy primitive.ObjectID) models.Campaign {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Campaign{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Description:  "A test campaign",
		Organizer:    "Test Organizer",
		Category:     []string{"community"},
		TargetAmount: target,
		StartDate:    now,
		IsActive:     true,
		ShowDonors:   true,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("campaigns").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("create campaign fixture: %v", err)
	}
	return c
}

// CreateActivity inserts a test activity created by the given user.
func (f *Fixtures) CreateActivity(ctx context.Context, title string, createdBy primitive.ObjectID) models.Activity {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Activity{
		ID:               primitive.NewObjectID(),
		Title:            title,
		Description:      "A test activity",
		Organizer:        "Test Organizer",
		Category:         []string{"community"},
		Date:             now.AddDate(0, 0, 7),
		Time:             "10:00",
		Location:         "Test Hall",
		IsActive:         true,
		ShowParticipants: true,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("create activity fixture: %v", err)
	}
	return a
}

// CreateParticipation inserts a participation with the given status.
func (f *Fixtures) CreateParticipation(ctx context.Context, userID, activityID primitive.ObjectID, status string) models.Participation {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Participation{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ActivityID:   activityID,
		Status:       status,
		PhoneNumber:  "5551234567",
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("participations").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create participation fixture: %v", err)
	}
	return p
}

// CreateDonation inserts a donation document directly, bypassing the
// ledger. Use the donation store when the test needs the campaign total
// updated as well.
func (f *Fixtures) CreateDonation(ctx context.Context, campaignID, userID primitive.ObjectID, amount int64) models.Donation {
	f.t.Helper()

	d := models.Donation{
		ID:         primitive.NewObjectID(),
		CampaignID: campaignID,
		UserID:     userID,
		Amount:     amount,
		PaymentID:  "pi_test_" + primitive.NewObjectID().Hex(),
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("donations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("create donation fixture: %v", err)
	}
	return d
}
