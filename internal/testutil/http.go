package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser is a convenience wrapper for building authenticated requests.
type TestUser struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Admin bool
}

// AdminUser returns a test user with administrator privileges.
func AdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID(),
		Name:  "Admin User",
		Email: "admin@example.com",
		Admin: true,
	}
}

// RegularUser returns a test user without administrator privileges.
func RegularUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID(),
		Name:  "Regular User",
		Email: "user@example.com",
	}
}

// WithUser attaches the test user to the request context the same way
// the session middleware would for a signed-in user.
func WithUser(r *http.Request, u TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Admin: u.Admin,
	})
}

// NewAuthenticatedRequest builds a request carrying the given user.
// body may be nil for requests without a payload.
func NewAuthenticatedRequest(t *testing.T, method, target string, body any, u TestUser) *http.Request {
	t.Helper()

	var r *http.Request
	if body == nil {
		r = httptest.NewRequest(method, target, nil)
	} else {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		r = httptest.NewRequest(method, target, bytes.NewReader(buf))
		r.Header.Set("Content-Type", "application/json")
	}
	return WithUser(r, u)
}

// AssertStatus fails the test when the recorded status does not match.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

// AssertErrorCode decodes the standard error envelope and checks its code.
func AssertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, rec.Body.String())
	}
	if env.Success {
		t.Fatalf("success = true, want error envelope (body: %s)", rec.Body.String())
	}
	if env.Error != want {
		t.Fatalf("error code = %q, want %q", env.Error, want)
	}
}

// DecodeData decodes the data field of a success envelope into out.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("success = false, want success envelope (body: %s)", rec.Body.String())
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode envelope data: %v (body: %s)", err, rec.Body.String())
	}
}

// AssertContains fails when the body does not contain the substring.
func AssertContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), substr) {
		t.Fatalf("body does not contain %q (body: %s)", substr, rec.Body.String())
	}
}
