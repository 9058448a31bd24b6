// internal/app/features/donations/handler.go
package donations

import (
	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
	donationstore "github.com/dalemusser/heartfund/internal/app/store/donations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all donation handlers.
type Handler struct {
	DB        *mongo.Database
	Store     *donationstore.Store
	Campaigns *campaignstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a donation Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Store:     donationstore.New(db),
		Campaigns: campaignstore.New(db),
		Log:       logger,
	}
}
