// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/heartfund/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/heartfund/internal/app/system/apiutil"
	"github.com/dalemusser/heartfund/internal/app/system/authz"
	"github.com/dalemusser/heartfund/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the dashboard handlers.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// MountRoutes mounts the signed-in user's dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/profile", h.Profile)
}

// MountAdminRoutes mounts the admin-only dashboard routes.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/volunteers", h.Volunteers)
}

// Summary returns the site-wide counters for the admin dashboard.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	s, err := reportqueries.BuildAdminSummary(ctx, h.DB)
	if err != nil {
		h.serverError(w, r, "admin summary failed", err)
		return
	}
	apiutil.OK(w, s, "")
}

type volunteerRow struct {
	UserID         string `json:"user_id"`
	Participations int64  `json:"participations"`
}

// Volunteers returns per-user active participation counts for the admin
// volunteer board.
func (h *Handler) Volunteers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	counts, err := reportqueries.UserParticipationCounts(ctx, h.DB)
	if err != nil {
		h.serverError(w, r, "volunteer counts failed", err)
		return
	}

	rows := make([]volunteerRow, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, volunteerRow{UserID: id.Hex(), Participations: n})
	}
	apiutil.OK(w, rows, "")
}

// Profile returns the current user's giving and volunteering summary.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apiutil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to continue")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	s, err := reportqueries.BuildUserSummary(ctx, h.DB, userID)
	if err != nil {
		h.serverError(w, r, "profile summary failed", err)
		return
	}
	apiutil.OK(w, s, "")
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	apiutil.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
}
