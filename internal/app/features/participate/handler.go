// internal/app/features/participate/handler.go
package participate

import (
	activitystore "github.com/dalemusser/heartfund/internal/app/store/activities"
	participationstore "github.com/dalemusser/heartfund/internal/app/store/participations"
	userstore "github.com/dalemusser/heartfund/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all participation handlers.
type Handler struct {
	DB         *mongo.Database
	Store      *participationstore.Store
	Activities *activitystore.Store
	Users      *userstore.Store
	Log        *zap.Logger
}

// NewHandler constructs a participation Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Store:      participationstore.New(db),
		Activities: activitystore.New(db),
		Users:      userstore.New(db),
		Log:        logger,
	}
}
