// internal/app/features/auditlog/routes.go
package auditlog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts GET /audit-events behind admin.
func MountRoutes(r chi.Router, h *Handler, admin func(http.Handler) http.Handler) {
	r.With(admin).Get("/audit-events", h.List)
}
