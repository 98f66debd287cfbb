// internal/app/features/users/routes.go
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the user endpoints on r. admin wraps the listing and
// the status/role updates; pass a pass-through middleware to leave them open.
func MountRoutes(r chi.Router, h *Handler, admin func(http.Handler) http.Handler) {
	r.Post("/register", h.Register)
	r.Get("/user/{email}", h.GetByEmail)
	r.Get("/user-profile", h.Profile)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Get("/users", h.List)
		r.Patch("/users/{id}/status", h.UpdateStatus)
		r.Patch("/users/{id}/role", h.UpdateRole)
	})
}
