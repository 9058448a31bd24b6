// internal/app/features/payments/handler.go
package payments

import (
	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
	"github.com/stripe/stripe-go/v81/client"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the payment-processor handlers.
type Handler struct {
	DB        *mongo.Database
	Campaigns *campaignstore.Store
	Stripe    *client.API
	Log       *zap.Logger
}

// NewHandler constructs a payments Handler with its own Stripe client.
func NewHandler(db *mongo.Database, stripeSecretKey string, logger *zap.Logger) *Handler {
	sc := &client.API{}
	sc.Init(stripeSecretKey, nil)

	return &Handler{
		DB:        db,
		Campaigns: campaignstore.New(db),
		Stripe:    sc,
		Log:       logger,
	}
}
