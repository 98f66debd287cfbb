// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// MountRoutes mounts POST /login and POST /logout.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
}
