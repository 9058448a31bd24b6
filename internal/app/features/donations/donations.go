// internal/app/features/donations/donations.go
package donations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/heartfund/internal/app/policy/visibilitypolicy"
	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
	donationstore "github.com/dalemusser/heartfund/internal/app/store/donations"
	"github.com/dalemusser/heartfund/internal/app/system/apiutil"
	"github.com/dalemusser/heartfund/internal/app/system/authz"
	"github.com/dalemusser/heartfund/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// recentDonationsLimit caps the admin dashboard's recent list.
const recentDonationsLimit = 20

type recordRequest struct {
	CampaignID string `json:"campaignId"`
	Amount     int64  `json:"amount"`
	Message    string `json:"message"`
	PaymentID  string `json:"paymentId"`
}

// Record writes a confirmed donation to the ledger. The payment has
// already been confirmed by the processor; PaymentID is its transaction
// token.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if req.CampaignID == "" || req.PaymentID == "" {
		apiutil.Error(w, http.StatusBadRequest, "MISSING_FIELDS", "Campaign id and payment id are required")
		return
	}
	campaignID, err := primitive.ObjectIDFromHex(req.CampaignID)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_ID", "A valid campaign id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d, err := h.Store.Record(ctx, donationstore.NewDonation{
		CampaignID: campaignID,
		UserID:     userID,
		Amount:     req.Amount,
		Message:    req.Message,
		PaymentID:  req.PaymentID,
	})
	switch {
	case err == nil:
		apiutil.Created(w, d, "Thank you for your donation")
	case errors.Is(err, donationstore.ErrInvalidAmount):
		apiutil.Error(w, http.StatusBadRequest, "INVALID_AMOUNT", "Donation amount must be positive")
	case errors.Is(err, donationstore.ErrCampaignNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
	default:
		h.serverError(w, r, "donation record failed", err)
	}
}

// Mine returns the current user's donations, newest first.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.ListByUser(ctx, userID)
	if err != nil {
		h.serverError(w, r, "donation list failed", err)
		return
	}
	apiutil.OK(w, items, "")
}

// ByCampaign returns a campaign's donations, newest first. Used by the
// campaign page's donor wall when the campaign opts in.
func (h *Handler) ByCampaign(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	campaignID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_ID", "A valid campaign id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Campaigns.GetByID(ctx, campaignID)
	switch {
	case errors.Is(err, campaignstore.ErrNotFound):
		apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
		return
	case err != nil:
		h.serverError(w, r, "campaign load failed", err)
		return
	}
	if !visibilitypolicy.CanViewDonors(r, c) {
		apiutil.Error(w, http.StatusForbidden, "FORBIDDEN", "This campaign does not share its donor list")
		return
	}

	items, err := h.Store.ListByCampaign(ctx, campaignID)
	if err != nil {
		h.serverError(w, r, "donation list failed", err)
		return
	}
	apiutil.OK(w, items, "")
}

// Recent returns the newest donations site-wide for the admin dashboard.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.Recent(ctx, recentDonationsLimit)
	if err != nil {
		h.serverError(w, r, "recent donations failed", err)
		return
	}
	apiutil.OK(w, items, "")
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
}
