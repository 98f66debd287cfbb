// internal/app/features/blogs/edit.go
package blogs

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	blogstore "github.com/dalemusser/bloodhub/internal/app/store/blogs"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/bloodhub/internal/app/system/limits"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// blogInput is the body of both create and update.
type blogInput struct {
	Title     string `json:"title" validate:"required,max=200"`
	Thumbnail string `json:"thumbnail" validate:"omitempty,url"`
	Content   string `json:"content" validate:"required"`
	CreatedBy string `json:"createdBy" validate:"required"`
}

// clean strips markup from the single-line fields and sanitizes the body.
// Content that is only markup counts as missing.
func (in *blogInput) clean() {
	in.Title = htmlsanitize.StripTags(in.Title)
	in.CreatedBy = htmlsanitize.StripTags(in.CreatedBy)
	if htmlsanitize.IsBlank(in.Content) {
		in.Content = ""
	} else {
		in.Content = htmlsanitize.Sanitize(in.Content)
	}
}

func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (blogInput, error) {
	var in blogInput
	if err := respond.Decode(w, r, &in); err != nil {
		return in, err
	}
	in.clean()
	if len(in.Content) > limits.MaxBlogContent {
		return in, apperr.Validation("content is too long").WithCode(apperr.CodeValidationFailed)
	}
	return in, respond.Validate(&in)
}

type createResponse struct {
	Message string `json:"message"`
	BlogID  string `json:"blogId"`
}

var errBlogNotFound = apperr.NotFound("Blog not found")

// Create handles POST /content-management/blog. New posts are drafts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "blogs.create")
	defer cancel()

	b, err := h.Blogs.Create(ctx, models.Blog{
		Title:     in.Title,
		Thumbnail: in.Thumbnail,
		Content:   in.Content,
		CreatedBy: in.CreatedBy,
	})
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	h.Log.Info("blog created", zap.String("blog_id", b.ID.Hex()), zap.String("created_by", b.CreatedBy))
	respond.JSON(w, http.StatusCreated, createResponse{Message: "Blog created successfully", BlogID: b.ID.Hex()})
}

// Update handles PUT /content-management/blogs/{id}. Every editable field is
// overwritten; status is left alone.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in, err := h.readInput(w, r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "blogs.update")
	defer cancel()

	err = h.Blogs.Update(ctx, id, blogstore.Update{
		Title:     in.Title,
		Thumbnail: in.Thumbnail,
		Content:   in.Content,
		CreatedBy: in.CreatedBy,
	})
	if err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}
	respond.Message(w, http.StatusOK, "Blog updated successfully")
}

// Delete handles DELETE /content-management/blogs/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "blogs.delete")
	defer cancel()

	if err := h.Blogs.Delete(ctx, id); err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}

	h.Log.Info("blog deleted", zap.String("blog_id", id.Hex()))
	h.Audit.BlogChanged(ctx, r, audit.EventBlogDeleted, id)
	respond.Message(w, http.StatusOK, "Blog deleted successfully")
}

func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errBlogNotFound
	}
	return apperr.Internal(err)
}
