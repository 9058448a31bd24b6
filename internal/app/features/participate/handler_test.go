package participate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/heartfund/internal/app/features/participate"
	participationstore "github.com/dalemusser/heartfund/internal/app/store/participations"
	"github.com/dalemusser/heartfund/internal/domain/models"
	"github.com/dalemusser/heartfund/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *participate.Handler {
	t.Helper()
	return participate.NewHandler(db, zap.NewNop())
}

func TestJoin_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	req := httptest.NewRequest("POST", "/participate/", nil)
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rec, "UNAUTHORIZED")
}

func TestJoin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	user := testutil.RegularUser()

	body := map[string]string{
		"activityId":  activity.ID.Hex(),
		"phoneNumber": "+1 555 123 4567",
	}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/participate/", body, user)
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var p models.Participation
	testutil.DecodeData(t, rec, &p)
	if p.Status != models.StatusRegistered {
		t.Errorf("status = %q, want %q", p.Status, models.StatusRegistered)
	}
	if p.PhoneNumber != "+15551234567" {
		t.Errorf("phone = %q, want normalized", p.PhoneNumber)
	}
}

func TestJoin_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]string{"activityId": primitive.NewObjectID().Hex()}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/participate/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "MISSING_FIELDS")
}

func TestJoin_InvalidPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())

	body := map[string]string{
		"activityId":  activity.ID.Hex(),
		"phoneNumber": "12345",
	}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/participate/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "INVALID_PHONE_NUMBER")
}

func TestJoin_UnknownActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]string{
		"activityId":  primitive.NewObjectID().Hex(),
		"phoneNumber": "5551234567",
	}
	req := testutil.NewAuthenticatedRequest(t, "POST", "/participate/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertErrorCode(t, rec, "NOT_FOUND")
}

func TestJoin_Conflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	user := testutil.RegularUser()

	body := map[string]string{
		"activityId":  activity.ID.Hex(),
		"phoneNumber": "5551234567",
	}

	req := testutil.NewAuthenticatedRequest(t, "POST", "/participate/", body, user)
	rec := httptest.NewRecorder()
	handler.Join(rec, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	req = testutil.NewAuthenticatedRequest(t, "POST", "/participate/", body, user)
	rec = httptest.NewRecorder()
	handler.Join(rec, req)

	testutil.AssertStatus(t, rec, http.StatusConflict)
	testutil.AssertErrorCode(t, rec, "ALREADY_PARTICIPATING")
}

func TestCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	store := participationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	user := testutil.RegularUser()

	req := testutil.NewAuthenticatedRequest(t, "GET", "/participate/check?activityId="+activity.ID.Hex(), nil, user)
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var before struct {
		HasJoined bool `json:"hasJoined"`
	}
	testutil.DecodeData(t, rec, &before)
	if before.HasJoined {
		t.Error("expected hasJoined=false before joining")
	}

	p, err := store.Join(ctx, activity.ID, user.ID, "5551234567")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	req = testutil.NewAuthenticatedRequest(t, "GET", "/participate/check?activityId="+activity.ID.Hex(), nil, user)
	rec = httptest.NewRecorder()
	handler.Check(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var after struct {
		HasJoined       bool   `json:"hasJoined"`
		ParticipationID string `json:"participationId"`
	}
	testutil.DecodeData(t, rec, &after)
	if !after.HasJoined {
		t.Error("expected hasJoined=true after joining")
	}
	if after.ParticipationID != p.ID.Hex() {
		t.Errorf("participationId = %q, want %q", after.ParticipationID, p.ID.Hex())
	}
}

func TestCheck_MissingActivityID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/participate/check", nil, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "MISSING_ACTIVITY_ID")
}

func TestCancel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	store := participationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	user := testutil.RegularUser()

	p, err := store.Join(ctx, activity.ID, user.ID, "5551234567")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	body := map[string]string{"participationId": p.ID.Hex()}
	req := testutil.NewAuthenticatedRequest(t, "DELETE", "/participate/", body, user)
	rec := httptest.NewRecorder()
	handler.Cancel(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var got models.Participation
	testutil.DecodeData(t, rec, &got)
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %q, want %q", got.Status, models.StatusCancelled)
	}
}

func TestCancel_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	store := participationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	owner := testutil.RegularUser()

	p, err := store.Join(ctx, activity.ID, owner.ID, "5551234567")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	// Someone else's participation reads as not found, not forbidden.
	body := map[string]string{"participationId": p.ID.Hex()}
	req := testutil.NewAuthenticatedRequest(t, "DELETE", "/participate/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.Cancel(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertErrorCode(t, rec, "NOT_FOUND")
}

func TestUpdate_RequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	body := map[string]string{
		"participationId": primitive.NewObjectID().Hex(),
		"status":          models.StatusAttended,
	}
	req := testutil.NewAuthenticatedRequest(t, "PUT", "/participate/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	testutil.AssertErrorCode(t, rec, "FORBIDDEN")
}

func TestUpdate_AsAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	volunteer := fx.CreateUser(ctx, "Sam Lee", "sam@example.com")
	p := fx.CreateParticipation(ctx, volunteer.ID, activity.ID, models.StatusRegistered)

	body := map[string]string{
		"participationId": p.ID.Hex(),
		"status":          models.StatusAttended,
	}
	req := testutil.NewAuthenticatedRequest(t, "PUT", "/participate/", body, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var got models.Participation
	testutil.DecodeData(t, rec, &got)
	if got.Status != models.StatusAttended {
		t.Errorf("status = %q, want %q", got.Status, models.StatusAttended)
	}
}

func TestSetStatus_OrganizerAndAdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := testutil.RegularUser()
	activity := fx.CreateActivity(ctx, "Park Cleanup", creator.ID)
	volunteer := fx.CreateUser(ctx, "Sam Lee", "sam@example.com")
	p := fx.CreateParticipation(ctx, volunteer.ID, activity.ID, models.StatusRegistered)

	body := map[string]string{
		"participationId": p.ID.Hex(),
		"status":          models.StatusAttended,
	}

	tests := []struct {
		name       string
		user       testutil.TestUser
		wantStatus int
	}{
		{"creator", creator, http.StatusOK},
		{"admin", testutil.AdminUser(), http.StatusOK},
		{"other user", testutil.RegularUser(), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(t, "PUT", "/participate/status", body, tt.user)
			rec := httptest.NewRecorder()
			handler.SetStatus(rec, req)

			testutil.AssertStatus(t, rec, tt.wantStatus)
			if tt.wantStatus == http.StatusForbidden {
				testutil.AssertErrorCode(t, rec, "FORBIDDEN")
			}
		})
	}
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := testutil.RegularUser()
	activity := fx.CreateActivity(ctx, "Park Cleanup", creator.ID)
	volunteer := fx.CreateUser(ctx, "Sam Lee", "sam@example.com")
	p := fx.CreateParticipation(ctx, volunteer.ID, activity.ID, models.StatusRegistered)

	body := map[string]string{
		"participationId": p.ID.Hex(),
		"status":          "waitlisted",
	}
	req := testutil.NewAuthenticatedRequest(t, "PUT", "/participate/status", body, creator)
	rec := httptest.NewRecorder()
	handler.SetStatus(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, "INVALID_STATUS")
}

func TestSetStatus_ResolvesParticipant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := testutil.RegularUser()
	activity := fx.CreateActivity(ctx, "Park Cleanup", creator.ID)
	volunteer := fx.CreateUser(ctx, "Sam Lee", "sam@example.com")
	p := fx.CreateParticipation(ctx, volunteer.ID, activity.ID, models.StatusRegistered)

	body := map[string]string{
		"participationId": p.ID.Hex(),
		"status":          models.StatusAttended,
	}
	req := testutil.NewAuthenticatedRequest(t, "PUT", "/participate/status", body, creator)
	rec := httptest.NewRecorder()
	handler.SetStatus(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var got struct {
		UserName string `json:"user_name"`
		Email    string `json:"email"`
	}
	testutil.DecodeData(t, rec, &got)
	if got.UserName != "Sam Lee" {
		t.Errorf("user name = %q, want %q", got.UserName, "Sam Lee")
	}
	if got.Email != "sam@example.com" {
		t.Errorf("email = %q, want %q", got.Email, "sam@example.com")
	}
}

func TestRecentParticipants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	store := participationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	activity := fx.CreateActivity(ctx, "Park Cleanup", primitive.NewObjectID())
	volunteer := fx.CreateUser(ctx, "Sam Lee", "sam@example.com")
	if _, err := store.Join(ctx, activity.ID, volunteer.ID, "5551234567"); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(t, "GET", "/participate/participants?activityId="+activity.ID.Hex(), nil, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.RecentParticipants(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var rows []struct {
		UserName string `json:"user_name"`
	}
	testutil.DecodeData(t, rec, &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(rows))
	}
	if rows[0].UserName != "Sam Lee" {
		t.Errorf("user name = %q, want %q", rows[0].UserName, "Sam Lee")
	}
}

func TestRecentParticipants_HiddenList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	organizer := fx.CreateUser(ctx, "Pat Organizer", "pat@example.com")
	activity := fx.CreateActivity(ctx, "Park Cleanup", organizer.ID)
	if _, err := db.Collection("activities").UpdateOne(ctx,
		map[string]any{"_id": activity.ID},
		map[string]any{"$set": map[string]any{"show_participants": false}},
	); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	tests := []struct {
		name string
		user testutil.TestUser
		want int
	}{
		{"other user", testutil.RegularUser(), http.StatusForbidden},
		{"admin", testutil.AdminUser(), http.StatusOK},
		{"organizer", testutil.TestUser{ID: organizer.ID, Name: "Pat Organizer", Email: "pat@example.com"}, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(t, "GET", "/participate/participants?activityId="+activity.ID.Hex(), nil, tc.user)
			rec := httptest.NewRecorder()
			handler.RecentParticipants(rec, req)
			testutil.AssertStatus(t, rec, tc.want)
		})
	}
}

func TestRecentParticipants_UnknownActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newTestHandler(t, db)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/participate/participants?activityId="+primitive.NewObjectID().Hex(), nil, testutil.RegularUser())
	rec := httptest.NewRecorder()
	handler.RecentParticipants(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertErrorCode(t, rec, "NOT_FOUND")
}
