// internal/app/features/blogs/publish.go
package blogs

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	blogstore "github.com/dalemusser/bloodhub/internal/app/store/blogs"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// transition describes one direction of the draft/published toggle.
type transition struct {
	from, to string
	op       string
	event    string
	ok       string
	missing  string
}

var (
	publish = transition{
		from:    models.BlogDraft,
		to:      models.BlogPublished,
		op:      "blogs.publish",
		event:   audit.EventBlogPublished,
		ok:      "Blog published successfully",
		missing: "Blog not found or already published",
	}
	unpublish = transition{
		from:    models.BlogPublished,
		to:      models.BlogDraft,
		op:      "blogs.unpublish",
		event:   audit.EventBlogUnpublished,
		ok:      "Blog unpublished successfully",
		missing: "Blog not found or already unpublished",
	}
)

// Publish handles PATCH /content-management/blogs/{id}/publish.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) { h.toggle(w, r, publish) }

// Unpublish handles PATCH /content-management/blogs/{id}/unpublish.
func (h *Handler) Unpublish(w http.ResponseWriter, r *http.Request) { h.toggle(w, r, unpublish) }

// toggle applies t as one conditional update. The client sees a single 404
// for "missing" and "already in the target state"; the log tells them apart.
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, t transition) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, t.op)
	defer cancel()

	err = h.Blogs.Transition(ctx, id, t.from, t.to)
	switch {
	case err == nil:
		h.Log.Info("blog status changed", zap.String("blog_id", id.Hex()), zap.String("status", t.to))
		h.Audit.BlogChanged(ctx, r, t.event, id)
		respond.Message(w, http.StatusOK, t.ok)
	case errors.Is(err, mongo.ErrNoDocuments):
		h.Log.Info(t.op+": blog does not exist", zap.String("blog_id", id.Hex()))
		respond.Error(w, r, h.Log, apperr.NotFound(t.missing))
	case errors.Is(err, blogstore.ErrWrongStatus):
		h.Log.Info(t.op+": blog is not "+t.from, zap.String("blog_id", id.Hex()))
		respond.Error(w, r, h.Log, apperr.NotFound(t.missing))
	default:
		respond.Error(w, r, h.Log, apperr.Internal(err))
	}
}
