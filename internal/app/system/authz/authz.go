// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's Mongo ObjectID, display name, administrator
// flag, and a found flag. If no user is present in context or the user ID
// is malformed, it returns (NilObjectID, "", false, false). This ensures
// callers can trust that ok=true means a valid, authenticated user with a
// valid ObjectID.
func UserCtx(r *http.Request) (userID primitive.ObjectID, name string, admin bool, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, "", false, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return primitive.NilObjectID, "", false, false
	}
	return userID, user.Name, user.Admin, true
}

// IsAdmin reports whether the current request's user holds the
// administrator flag.
func IsAdmin(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.Admin
}

// CanManageParticipation reports whether the acting user may change the
// status of a participation belonging to the given activity: the activity's
// creator or an administrator.
func CanManageParticipation(r *http.Request, activityCreator primitive.ObjectID) bool {
	userID, _, admin, ok := UserCtx(r)
	if !ok {
		return false
	}
	return admin || userID == activityCreator
}
