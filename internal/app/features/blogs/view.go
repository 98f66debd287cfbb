// internal/app/features/blogs/view.go
package blogs

import (
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// List handles GET /content-management/blogs?status=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := normalize.Enum(query.Get(r, "status"))
	if status != "" && !models.IsValidBlogStatus(status) {
		respond.Error(w, r, h.Log, apperr.Validation("Invalid status"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "blogs.list")
	defer cancel()

	blogs, err := h.Blogs.List(ctx, status)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	respond.JSON(w, http.StatusOK, blogs)
}

// Get handles GET /content-management/blogs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "blogs.get")
	defer cancel()

	b, err := h.Blogs.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}
	respond.JSON(w, http.StatusOK, b)
}
