// internal/app/features/campaigns/campaigns.go
package campaigns

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
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

// campaignInput is the request body for create and update.
type campaignInput struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Organizer    string     `json:"organizer"`
	Category     []string   `json:"category"`
	TargetAmount int64      `json:"target_amount"`
	Images       []string   `json:"images"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	IsActive     bool       `json:"is_active"`
	ShowDonors   bool       `json:"show_donors"`
}

// List returns campaigns, newest first. ?active=true limits the result
// to live campaigns for the public listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	activeOnly := query.Get(r, "active") == "true"
	items, err := h.Store.List(ctx, activeOnly)
	if err != nil {
		h.serverError(w, r, "campaign list failed", err)
		return
	}
	apiutil.OK(w, items, "")
}

// Show returns one campaign by id.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Store.GetByID(ctx, id)
	switch {
	case err == nil:
		apiutil.OK(w, c, "")
	case errors.Is(err, campaignstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
	default:
		h.serverError(w, r, "campaign lookup failed", err)
	}
}

// Create inserts a new campaign. The description is sanitized because it
// is rendered as HTML on the campaign page.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	var in campaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Store.Create(ctx, in.toModel(userID))
	switch {
	case err == nil:
		apiutil.Created(w, c, "Campaign created")
	case errors.Is(err, campaignstore.ErrInvalid):
		apiutil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.serverError(w, r, "campaign create failed", err)
	}
}

// Update replaces a campaign's editable fields. The collected amount is
// not editable through this path.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in campaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd := campaignstore.Update{
		Name:         in.Name,
		Description:  htmlsanitize.Sanitize(in.Description),
		Organizer:    in.Organizer,
		Category:     in.Category,
		TargetAmount: in.TargetAmount,
		Images:       in.Images,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsActive:     in.IsActive,
		ShowDonors:   in.ShowDonors,
	}

	err := h.Store.Apply(ctx, id, upd)
	switch {
	case err == nil:
		apiutil.OK(w, nil, "Campaign updated")
	case errors.Is(err, campaignstore.ErrInvalid):
		apiutil.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, campaignstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
	default:
		h.serverError(w, r, "campaign update failed", err)
	}
}

// Delete removes a campaign. Donations attributed to it are kept; report
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
		apiutil.OK(w, nil, "Campaign deleted")
	case errors.Is(err, campaignstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
	default:
		h.serverError(w, r, "campaign delete failed", err)
	}
}

// Report returns the campaign's funding report: donation count, total
// raised, and the attributed donation list.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if errors.Is(err, campaignstore.ErrNotFound) {
			apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
			return
		}
		h.serverError(w, r, "campaign lookup failed", err)
		return
	}

	report, err := reportqueries.BuildCampaignReport(ctx, h.DB, id)
	if err != nil {
		h.serverError(w, r, "campaign report failed", err)
		return
	}
	apiutil.OK(w, report, "")
}

func (in campaignInput) toModel(createdBy primitive.ObjectID) models.Campaign {
	return models.Campaign{
		Name:         in.Name,
		Description:  htmlsanitize.Sanitize(in.Description),
		Organizer:    in.Organizer,
		Category:     in.Category,
		TargetAmount: in.TargetAmount,
		Images:       in.Images,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsActive:     in.IsActive,
		ShowDonors:   in.ShowDonors,
		CreatedBy:    createdBy,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_ID", "A valid campaign id is required")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
}
