// Package visibilitypolicy decides who may see donor and participant
// lists.
//
// Visibility rules:
//   - Administrators always see the lists.
//   - An activity's creator always sees its participants.
//   - Everyone else sees a list only when the campaign or activity has
//     opted in (ShowDonors / ShowParticipants).
package visibilitypolicy

import (
	"net/http"

	"github.com/dalemusser/heartfund/internal/app/system/authz"
	"github.com/dalemusser/heartfund/internal/domain/models"
)

// CanViewDonors reports whether the current user may see the campaign's
// donor list.
func CanViewDonors(r *http.Request, c *models.Campaign) bool {
	if c.ShowDonors {
		return true
	}
	return authz.IsAdmin(r)
}

// CanViewParticipants reports whether the current user may see the
// activity's participant list.
func CanViewParticipants(r *http.Request, a *models.Activity) bool {
	if a.ShowParticipants {
		return true
	}
	if authz.IsAdmin(r) {
		return true
	}
	userID, _, _, ok := authz.UserCtx(r)
	return ok && userID == a.CreatedBy
}
