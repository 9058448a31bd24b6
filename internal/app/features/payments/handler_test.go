package payments_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/heartfund/internal/app/features/payments"
	"github.com/dalemusser/heartfund/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// The processor itself is not exercised here; these tests cover the
// request validation that runs before any call leaves the process.

func newTestHandler(t *testing.T, db *mongo.Database) *payments.Handler {
	t.Helper()
	return payments.NewHandler(db, "sk_test_fake", zap.NewNop())
}

func TestCreateIntent_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	req := httptest.NewRequest("POST", "/payments/intent", nil)
	rec := httptest.NewRecorder()
	handler.CreateIntent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rec, "UNAUTHORIZED")
}

func TestCreateIntent_InvalidAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]any{"campaignId": primitive.NewObjectID().Hex(), "amount": -5}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/payments/intent", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.CreateIntent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "INVALID_AMOUNT")
}

func TestCreateIntent_InvalidCampaignID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]any{"campaignId": "nope", "amount": 100}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/payments/intent", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.CreateIntent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "INVALID_ID")
}

func TestCreateIntent_UnknownCampaign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]any{"campaignId": primitive.NewObjectID().Hex(), "amount": 100}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/payments/intent", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.CreateIntent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertErrorCode(t, rec, "NOT_FOUND")
}

func TestCreateIntent_ClosedCampaign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	campaign := fx.CreateCampaign(ctx, "Closed Drive", 5000, primitive.NewObjectID())
	if _, err := db.Collection("campaigns").UpdateOne(ctx,
		map[string]any{"_id": campaign.ID},
		map[string]any{"$set": map[string]any{"is_active": false}},
	); err != nil {
		t.Fatalf("update fixture: %v", err)
	}

	body := map[string]any{"campaignId": campaign.ID.Hex(), "amount": 100}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/payments/intent", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.CreateIntent(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "CAMPAIGN_CLOSED")
}
