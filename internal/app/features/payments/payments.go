// internal/app/features/payments/payments.go
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
	"github.com/dalemusser/heartfund/internal/app/system/apiutil"
	"github.com/dalemusser/heartfund/internal/app/system/authz"
	"github.com/dalemusser/heartfund/internal/app/system/timeouts"
	"github.com/stripe/stripe-go/v81"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type intentRequest struct {
	CampaignID string `json:"campaignId"`
	Amount     int64  `json:"amount"`
}

// intentResult carries the client secret the browser needs to confirm
// the payment with the processor.
type intentResult struct {
	ClientSecret string `json:"clientSecret"`
	PaymentID    string `json:"paymentId"`
}

// CreateIntent opens a payment with the processor for a donation to the
// given campaign. Amounts are whole currency units; the processor wants
// the smallest unit, hence the cent conversion.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if req.Amount <= 0 {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_AMOUNT", "Donation amount must be positive")
		return
	}
	campaignID, err := primitive.ObjectIDFromHex(req.CampaignID)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "INVALID_ID", "A valid campaign id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	campaign, err := h.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, campaignstore.ErrNotFound) {
			apiutil.Error(w, http.StatusNotFound, "NOT_FOUND", "Campaign not found")
			return
		}
		h.serverError(w, r, "campaign lookup failed", err)
		return
	}
	if !campaign.IsActive {
		apiutil.Error(w, http.StatusBadRequest, "CAMPAIGN_CLOSED", "This campaign is not accepting donations")
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount * 100),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("campaign_id", campaignID.Hex())
	params.AddMetadata("user_id", userID.Hex())

	pi, err := h.Stripe.PaymentIntents.New(params)
	if err != nil {
		h.serverError(w, r, "payment intent create failed", err)
		return
	}

	apiutil.OK(w, intentResult{ClientSecret: pi.ClientSecret, PaymentID: pi.ID}, "")
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
}
