// internal/app/features/users/list.go
package users

import (
	"net/http"

	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/paging"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

type listResponse struct {
	Users      []models.User `json:"users"`
	TotalUsers int64         `json:"totalUsers"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// List handles GET /users?status=&page=&limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := normalize.Enum(query.Get(r, "status"))
	if status != "" && !models.IsValidUserStatus(status) {
		respond.Error(w, r, h.Log, apperr.Validation("Invalid status"))
		return
	}
	pg := paging.Parse(r, h.MaxLimit)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "users.list")
	defer cancel()

	users, total, err := h.Users.List(ctx, userstore.ListQuery{
		Status: status,
		Skip:   pg.Skip(),
		Limit:  int64(pg.Limit),
	})
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Users:      users,
		TotalUsers: total,
		Page:       pg.Page,
		Limit:      pg.Limit,
		TotalPages: paging.TotalPages(total, pg.Limit),
	})
}
