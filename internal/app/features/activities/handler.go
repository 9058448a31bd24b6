// internal/app/features/activities/handler.go
package activities

import (
	activitystore "github.com/dalemusser/heartfund/internal/app/store/activities"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all activity handlers.
type Handler struct {
	DB    *mongo.Database
	Store *activitystore.Store
	Log   *zap.Logger
}

// NewHandler constructs an activity Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: activitystore.New(db),
		Log:   logger,
	}
}
