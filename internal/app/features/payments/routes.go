// internal/app/features/payments/routes.go
package payments

import "github.com/go-chi/chi/v5"

// MountRoutes mounts payment routes. All require a signed-in user.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/intent", h.CreateIntent)
}
