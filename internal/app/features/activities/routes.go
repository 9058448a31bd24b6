// internal/app/features/activities/routes.go
package activities

import (
	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts activity routes. Reads are public; writes and the
// participation report require an administrator.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Show)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/report", h.Report)
	})
}
