// internal/app/features/users/lookup.go
package users

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

type lookupResponse struct {
	Message string       `json:"message"`
	Data    *models.User `json:"data"`
}

var errUserNotFound = apperr.NotFound("User not found")

// GetByEmail handles GET /user/{email}.
func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.lookup(r, chi.URLParam(r, "email"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, lookupResponse{Message: "get user success", Data: u})
}

// Profile handles GET /user-profile?email=. The body is the user document itself.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.lookup(r, query.Get(r, "email"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

func (h *Handler) lookup(r *http.Request, rawEmail string) (*models.User, error) {
	email := normalize.Email(rawEmail)
	if email == "" {
		return nil, apperr.Validation("User email is required.")
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.lookup")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return u, nil
}
