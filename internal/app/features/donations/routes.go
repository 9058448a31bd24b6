// internal/app/features/donations/routes.go
package donations

import (
	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts donation routes. Recording a donation and reading
// one's own history require a signed-in user; the site-wide recent list
// is admin only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Record)
	r.Get("/mine", h.Mine)
	r.Get("/campaign/{id}", h.ByCampaign)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/recent", h.Recent)
	})
}
