// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts GET /dashboard-statistics behind admin.
func MountRoutes(r chi.Router, h *Handler, admin func(http.Handler) http.Handler) {
	r.With(admin).Get("/dashboard-statistics", h.ServeStatistics)
}
