// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/dalemusser/heartfund/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts upload routes. Only administrators upload images;
// campaign and activity forms are admin surfaces.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/image", h.Image)
	})
}
