// internal/app/features/blogs/routes.go
package blogs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /content-management subrouter. admin wraps publish,
// unpublish and delete.
func Routes(h *Handler, admin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/blog", h.Create)
	r.Get("/blogs", h.List)
	r.Get("/blogs/{id}", h.Get)
	r.Put("/blogs/{id}", h.Update)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Patch("/blogs/{id}/publish", h.Publish)
		r.Patch("/blogs/{id}/unpublish", h.Unpublish)
		r.Delete("/blogs/{id}", h.Delete)
	})
	return r
}
