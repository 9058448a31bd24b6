// internal/app/features/participate/participate.go
package participate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/heartfund/internal/app/policy/visibilitypolicy"
	activitystore "github.com/dalemusser/heartfund/internal/app/store/activities"
	participationstore "github.com/dalemusser/heartfund/internal/app/store/participations"
	"github.com/dalemusser/heartfund/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/heartfund/internal/app/system/apiutil"
	"github.com/dalemusser/heartfund/internal/app/system/authz"
	"github.com/dalemusser/heartfund/internal/app/system/normalize"
	"github.com/dalemusser/heartfund/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// recentParticipantsLimit caps the public participants strip on the
// activity page.
const recentParticipantsLimit = 5

// checkResult is the response body for GET /participate/check.
type checkResult struct {
	HasJoined       bool   `json:"hasJoined"`
	ParticipationID string `json:"participationId,omitempty"`
}

// Check reports whether the current user has a live participation in
// the given activity.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	activityID, ok := requireObjectID(w, query.Get(r, "activityId"), "MISSING_ACTIVITY_ID", "Activity id is required")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.FindActive(ctx, userID, activityID)
	if err != nil {
		h.serverError(w, r, "participation check failed", err)
		return
	}

	result := checkResult{}
	if p != nil {
		result.HasJoined = true
		result.ParticipationID = p.ID.Hex()
	}
	apiutil.OK(w, result, "")
}

type joinRequest struct {
	ActivityID  string `json:"activityId"`
	PhoneNumber string `json:"phoneNumber"`
}

// Join registers the current user for an activity, or reactivates their
// cancelled participation.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if req.ActivityID == "" || req.PhoneNumber == "" {
		apiutil.Error(w, http.StatusBadRequest, "MISSING_FIELDS", "Activity id and phone number are required")
		return
	}
	activityID, ok := requireObjectID(w, req.ActivityID, "MISSING_ACTIVITY_ID", "Activity id is required")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Activities.GetByID(ctx, activityID); err != nil {
		if errors.Is(err, activitystore.ErrNotFound) {
			apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
			return
		}
		h.serverError(w, r, "activity lookup failed", err)
		return
	}

	p, err := h.Store.Join(ctx, activityID, userID, req.PhoneNumber)
	switch {
	case err == nil:
		apiutil.Created(w, p, "Successfully joined the activity")
	case errors.Is(err, normalize.ErrInvalidPhone):
		apiutil.Error(w, http.StatusBadRequest, "INVALID_PHONE_NUMBER", "Phone number must contain 10 to 15 digits")
	case errors.Is(err, participationstore.ErrAlreadyParticipating):
		apiutil.Error(w, http.StatusConflict, "ALREADY_PARTICIPATING", "You have already joined this activity")
	default:
		h.serverError(w, r, "join failed", err)
	}
}

type cancelRequest struct {
	ParticipationID string `json:"participationId"`
}

// Cancel is the self-service cancellation path. A participation that is
// not owned by the current user reads as not found.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	participationID, ok := requireObjectID(w, req.ParticipationID, "MISSING_PARTICIPATION_ID", "Participation id is required")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Cancel(ctx, participationID, userID)
	switch {
	case err == nil:
		apiutil.OK(w, p, "Participation cancelled")
	case errors.Is(err, participationstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Participation not found")
	default:
		h.serverError(w, r, "cancel failed", err)
	}
}

type statusRequest struct {
	ParticipationID string `json:"participationId"`
	Status          string `json:"status"`
}

// Update sets a participation's status directly. Restricted to
// administrators.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	_, _, admin, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}
	if !admin {
		apiutil.Error(w, http.StatusForbidden, "FORBIDDEN", "Administrator access required")
		return
	}

	req, ok := decodeStatusRequest(w, r)
	if !ok {
		return
	}
	participationID, ok := requireObjectID(w, req.ParticipationID, "MISSING_PARTICIPATION_ID", "Participation id is required")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.SetStatus(ctx, participationID, req.Status)
	switch {
	case err == nil:
		apiutil.OK(w, p, "Participation updated")
	case errors.Is(err, participationstore.ErrInvalidStatus):
		apiutil.Error(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be registered, attended, or cancelled")
	case errors.Is(err, participationstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Participation not found")
	default:
		h.serverError(w, r, "status update failed", err)
	}
}

// statusResult is the response body for SetStatus, with the participant
// resolved for the organizer's roster view.
type statusResult struct {
	Participation any    `json:"participation"`
	UserName      string `json:"user_name"`
	Email         string `json:"email,omitempty"`
}

// SetStatus sets a participation's status on behalf of the activity's
// organizer. The acting user must be the activity's creator or an
// administrator.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	req, ok := decodeStatusRequest(w, r)
	if !ok {
		return
	}
	participationID, ok := requireObjectID(w, req.ParticipationID, "MISSING_PARTICIPATION_ID", "Participation id is required")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	target, err := h.Store.GetByID(ctx, participationID)
	if err != nil {
		if errors.Is(err, participationstore.ErrNotFound) {
			apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Participation not found")
			return
		}
		h.serverError(w, r, "participation lookup failed", err)
		return
	}

	activity, err := h.Activities.GetByID(ctx, target.ActivityID)
	if err != nil {
		if errors.Is(err, activitystore.ErrNotFound) {
			apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
			return
		}
		h.serverError(w, r, "activity lookup failed", err)
		return
	}

	if !authz.CanManageParticipation(r, activity.CreatedBy) {
		apiutil.Error(w, http.StatusForbidden, "FORBIDDEN", "Only the organizer or an administrator can update participants")
		return
	}

	p, err := h.Store.SetStatus(ctx, participationID, req.Status)
	switch {
	case err == nil:
		result := statusResult{Participation: p, UserName: reportqueries.DeletedPlaceholder}
		if u, uerr := h.Users.GetByID(ctx, p.UserID); uerr == nil {
			result.UserName = u.UserName
			result.Email = u.Email
		}
		apiutil.OK(w, result, "Participation updated")
	case errors.Is(err, participationstore.ErrInvalidStatus):
		apiutil.Error(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be registered, attended, or cancelled")
	case errors.Is(err, participationstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Participation not found")
	default:
		h.serverError(w, r, "status update failed", err)
	}
}

// RecentParticipants returns the newest non-cancelled participants for
// an activity, with user names resolved.
func (h *Handler) RecentParticipants(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	activityID, ok := requireObjectID(w, query.Get(r, "activityId"), "MISSING_ACTIVITY_ID", "Activity id is required")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	activity, err := h.Activities.GetByID(ctx, activityID)
	switch {
	case errors.Is(err, activitystore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
		return
	case err != nil:
		h.serverError(w, r, "activity load failed", err)
		return
	}
	if !visibilitypolicy.CanViewParticipants(r, activity) {
		apiutil.Error(w, http.StatusForbidden, "FORBIDDEN", "This activity does not share its participant list")
		return
	}

	rows, err := reportqueries.RecentParticipants(ctx, h.DB, activityID, recentParticipantsLimit)
	if err != nil {
		h.serverError(w, r, "participants query failed", err)
		return
	}
	apiutil.OK(w, rows, "")
}

func decodeStatusRequest(w http.ResponseWriter, r *http.Request) (statusRequest, bool) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return statusRequest{}, false
	}
	if req.ParticipationID == "" || req.Status == "" {
		apiutil.Error(w, http.StatusBadRequest, "MISSING_FIELDS", "Participation id and status are required")
		return statusRequest{}, false
	}
	return req, true
}

// requireObjectID parses a hex id from the request, writing a 400 with
// the given code when the value is missing or malformed.
func requireObjectID(w http.ResponseWriter, raw, code, message string) (primitive.ObjectID, bool) {
	if raw == "" {
		apiutil.Error(w, http.StatusBadRequest, code, message)
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, code, message)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
}
