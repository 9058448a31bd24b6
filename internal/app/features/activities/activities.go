// internal/app/features/activities/activities.go
package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	activitystore "github.com/dalemusser/heartfund/internal/app/store/activities"
	"github.com/dalemusser/heartfund/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/heartfund/internal/app/system/apiutil"
	"github.com/dalemusser/heartfund/internal/app/system/authz"
	"github.com/dalemusser/heartfund/internal/app/system/htmlsanitize"
	"github.com/dalemusser/heartfund/internal/app/system/timeouts"
	"github.com/dalemusser/heartfund/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// activityInput is the request body for create and update.
type activityInput struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Organizer        string    `json:"organizer"`
	Category         []string  `json:"category"`
	ImageURLs        []string  `json:"image_urls"`
	Date             time.Time `json:"date"`
	Time             string    `json:"time"`
	Location         string    `json:"location"`
	IsActive         bool      `json:"is_active"`
	ShowParticipants bool      `json:"show_participants"`
}

// List returns activities, newest first. ?active=true limits the result
// to open activities for the public listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	activeOnly := query.Get(r, "active") == "true"
	items, err := h.Store.List(ctx, activeOnly)
	if err != nil {
		h.serverError(w, r, "activity list failed", err)
		return
	}
	apiutil.OK(w, items, "")
}

// Show returns one activity by id.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	switch {
	case err == nil:
		apiutil.OK(w, a, "")
	case errors.Is(err, activitystore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
	default:
		h.serverError(w, r, "activity lookup failed", err)
	}
}

// Create inserts a new volunteer activity.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	var in activityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.Create(ctx, in.toModel(userID))
	switch {
	case err == nil:
		apiutil.Created(w, a, "Activity created")
	case errors.Is(err, activitystore.ErrInvalid):
		apiutil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.serverError(w, r, "activity create failed", err)
	}
}

// Update replaces an activity's editable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in activityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd := activitystore.Update{
		Title:            in.Title,
		Description:      htmlsanitize.Sanitize(in.Description),
		Organizer:        in.Organizer,
		Category:         in.Category,
		ImageURLs:        in.ImageURLs,
		Date:             in.Date,
		Time:             in.Time,
		Location:         in.Location,
		IsActive:         in.IsActive,
		ShowParticipants: in.ShowParticipants,
	}

	err := h.Store.Apply(ctx, id, upd)
	switch {
	case err == nil:
		apiutil.OK(w, nil, "Activity updated")
	case errors.Is(err, activitystore.ErrInvalid):
		apiutil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, activitystore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
	default:
		h.serverError(w, r, "activity update failed", err)
	}
}

// Delete removes an activity. Its participation records are kept; report
// rows referencing it resolve to a placeholder.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Store.Delete(ctx, id)
	switch {
	case err == nil:
		apiutil.OK(w, nil, "Activity deleted")
	case errors.Is(err, activitystore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
	default:
		h.serverError(w, r, "activity delete failed", err)
	}
}

// Report returns the activity's participation report: total count and
// the participant list with users resolved.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if errors.Is(err, activitystore.ErrNotFound) {
			apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Activity not found")
			return
		}
		h.serverError(w, r, "activity lookup failed", err)
		return
	}

	report, err := reportqueries.BuildActivityReport(ctx, h.DB, id)
	if err != nil {
		h.serverError(w, r, "activity report failed", err)
		return
	}
	apiutil.OK(w, report, "")
}

func (in activityInput) toModel(createdBy primitive.ObjectID) models.Activity {
	return models.Activity{
		Title:            in.Title,
		Description:      htmlsanitize.Sanitize(in.Description),
		Organizer:        in.Organizer,
		Category:         in.Category,
		ImageURLs:        in.ImageURLs,
		Date:             in.Date,
		Time:             in.Time,
		Location:         in.Location,
		IsActive:         in.IsActive,
		ShowParticipants: in.ShowParticipants,
		CreatedBy:        createdBy,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_ID", "A valid activity id is required")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
}
