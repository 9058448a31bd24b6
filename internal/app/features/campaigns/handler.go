// internal/app/features/campaigns/handler.go
package campaigns

import (
	campaignstore "github.com/dalemusser/heartfund/internal/app/store/campaigns"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all campaign handlers.
type Handler struct {
	DB    *mongo.Database
	Store *campaignstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a campaign Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: campaignstore.New(db),
		Log:   logger,
	}
}
