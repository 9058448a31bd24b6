// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// homeVM is the view model for the landing page.
type homeVM struct {
	Title      string
	IsLoggedIn bool
	UserName   string
	IsAdmin    bool
}

// ServeRoot handles GET / with the landing page.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	vm := homeVM{Title: "HeartFund"}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserName = u.Name
		vm.IsAdmin = u.Admin
	}

	templates.Render(w, r, "home", vm)
}
