package donations_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/heartfund/internal/app/features/donations"
	"github.com/dalemusser/heartfund/internal/domain/models"
	"github.com/dalemusser/heartfund/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *donations.Handler {
	t.Helper()
	return donations.NewHandler(db, zap.NewNop())
}

func TestRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Clean Water", 10000, primitive.NewObjectID())
	user := testutil.RegularUser()

	body := map[string]any{
		"campaignId": campaign.ID.Hex(),
		"amount":     250,
		"message":    "keep it up",
		"paymentId":  "pi_test_abc",
	}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/donations/", body, user)
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var d models.Donation
	testutil.DecodeData(t, rec, &d)
	if d.Amount != 250 {
		t.Errorf("amount = %d, want 250", d.Amount)
	}
	if d.UserID != user.ID {
		t.Errorf("user_id = %s, want %s", d.UserID.Hex(), user.ID.Hex())
	}

	var c models.Campaign
	if err := db.Collection("campaigns").FindOne(ctx, map[string]any{"_id": campaign.ID}).Decode(&c); err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if c.CollectedAmount != 250 {
		t.Errorf("collected = %d, want 250", c.CollectedAmount)
	}
}

func TestRecord_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	req := httptest.NewRequest("POST", "/donations/", nil)
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rec, "UNAUTHORIZED")
}

func TestRecord_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]any{"campaignId": primitive.NewObjectID().Hex(), "amount": 100}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/donations/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "MISSING_FIELDS")
}

func TestRecord_InvalidAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Clean Water", 10000, primitive.NewObjectID())

	body := map[string]any{
		"campaignId": campaign.ID.Hex(),
		"amount":     0,
		"paymentId":  "pi_test_zero",
	}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/donations/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "INVALID_AMOUNT")
}

func TestRecord_UnknownCampaign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]any{
		"campaignId": primitive.NewObjectID().Hex(),
		"amount":     100,
		"paymentId":  "pi_test_missing",
	}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/donations/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertErrorCode(t, rec, "NOT_FOUND")
}

func TestMine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Clean Water", 10000, primitive.NewObjectID())
	user := testutil.RegularUser()
	fx.CreateDonation(ctx, campaign.ID, user.ID, 100)
	fx.CreateDonation(ctx, campaign.ID, user.ID, 200)
	fx.CreateDonation(ctx, campaign.ID, primitive.NewObjectID(), 999)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/donations/mine", nil, user)
	rec := httptest.NewRecorder()
	handler.Mine(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var items []models.Donation
	testutil.DecodeData(t, rec, &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(items))
	}
	for _, d := range items {
		if d.UserID != user.ID {
			t.Errorf("donation %s belongs to %s, want %s", d.ID.Hex(), d.UserID.Hex(), user.ID.Hex())
		}
	}
}

func TestByCampaign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Clean Water", 10000, primitive.NewObjectID())
	other := fx.CreateCampaign(ctx, "Food Bank", 5000, primitive.NewObjectID())
	fx.CreateDonation(ctx, campaign.ID, primitive.NewObjectID(), 100)
	fx.CreateDonation(ctx, other.ID, primitive.NewObjectID(), 50)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/donations/campaign/"+campaign.ID.Hex(), nil, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", campaign.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ByCampaign(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var items []models.Donation
	testutil.DecodeData(t, rec, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(items))
	}
	if items[0].CampaignID != campaign.ID {
		t.Errorf("campaign_id = %s, want %s", items[0].CampaignID.Hex(), campaign.ID.Hex())
	}
}

func TestByCampaign_HiddenDonorWall(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Clean Water", 10000, primitive.NewObjectID())
	if _, err := db.Collection("campaigns").UpdateOne(ctx,
		map[string]any{"_id": campaign.ID},
		map[string]any{"$set": map[string]any{"show_donors": false}},
	); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	fx.CreateDonation(ctx, campaign.ID, primitive.NewObjectID(), 100)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/donations/campaign/"+campaign.ID.Hex(), nil, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", campaign.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ByCampaign(rec, req)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	testutil.AssertErrorCode(t, rec, "FORBIDDEN")

	// Admins can still see the list.
	req = testutil.NewAuthenticatedRequest(t, "GET", "/donations/campaign/"+campaign.ID.Hex(), nil, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", campaign.ID.Hex())
	rec = httptest.NewRecorder()
	handler.ByCampaign(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestByCampaign_UnknownCampaign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedRequest(t, "GET", "/donations/campaign/"+id, nil, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	handler.ByCampaign(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertErrorCode(t, rec, "NOT_FOUND")
}

func TestRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Clean Water", 10000, primitive.NewObjectID())
	for i := 0; i < 3; i++ {
		fx.CreateDonation(ctx, campaign.ID, primitive.NewObjectID(), 10)
	}

	req := testutil.NewAuthenticatedRequest(t, "GET", "/donations/recent", nil, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.Recent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var items []models.Donation
	testutil.DecodeData(t, rec, &items)
	if len(items) != 3 {
		t.Errorf("expected 3 donations, got %d", len(items))
	}
}
