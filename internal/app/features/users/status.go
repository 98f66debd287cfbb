// internal/app/features/users/status.go
package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type statusRequest struct {
	Status string `json:"status"`
}

type roleRequest struct {
	Role string `json:"role"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH /users/{id}/status                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// UpdateStatus sets a user's status to active or blocked.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var req statusRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	status := normalize.Enum(req.Status)
	if !models.IsValidUserStatus(status) {
		respond.Error(w, r, h.Log, apperr.Validation("Invalid status"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.update_status")
	defer cancel()

	if err := h.Users.UpdateStatus(ctx, id, status); err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}

	h.Log.Info("user status updated", zap.String("user_id", id.Hex()), zap.String("status", status))
	h.Audit.UserStatusChanged(ctx, r, id, status)
	respond.Message(w, http.StatusOK, fmt.Sprintf("User status updated to %s", status))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH /users/{id}/role                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// UpdateRole sets a user's role to donor, volunteer or admin.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var req roleRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	role := normalize.Enum(req.Role)
	if !models.IsValidRole(role) {
		respond.Error(w, r, h.Log, apperr.Validation("Invalid role"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.update_role")
	defer cancel()

	if err := h.Users.UpdateRole(ctx, id, role); err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}

	h.Log.Info("user role updated", zap.String("user_id", id.Hex()), zap.String("role", role))
	h.Audit.UserRoleChanged(ctx, r, id, role)
	respond.Message(w, http.StatusOK, fmt.Sprintf("User role updated to %s", role))
}

func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errUserNotFound
	}
	return apperr.Internal(err)
}
