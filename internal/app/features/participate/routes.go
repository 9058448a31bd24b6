// internal/app/features/participate/routes.go
package participate

import "github.com/go-chi/chi/v5"

// MountRoutes mounts all participation routes on the given router.
// Every route requires a signed-in user; per-route authorization is
// handled inside the handlers.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/check", h.Check)
	r.Post("/", h.Join)
	r.Delete("/", h.Cancel)
	r.Put("/", h.Update)
	r.Put("/status", h.SetStatus)
	r.Get("/participants", h.RecentParticipants)
}
