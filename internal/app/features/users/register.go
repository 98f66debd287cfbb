// internal/app/features/users/register.go
package users

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required,max=100"`
	Avatar     string `json:"avatar" validate:"omitempty,url"`
	BloodGroup string `json:"bloodGroup" validate:"required,bloodgroup"`
	District   string `json:"district" validate:"required"`
	Upazila    string `json:"upazila" validate:"required"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

var errEmailExists = apperr.Validation("User already exists!").WithCode(apperr.CodeEmailExists)

// Register handles POST /register.
//
// A duplicate email is 400 email_exists whether it is caught by the
// existence check or by the unique index at insert.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	req.Email = normalize.Email(req.Email)
	req.Name = normalize.Name(req.Name)
	req.BloodGroup = normalize.BloodGroup(req.BloodGroup)
	if err := respond.Validate(&req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.register")
	defer cancel()

	exists, err := h.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if exists {
		respond.Error(w, r, h.Log, errEmailExists)
		return
	}

	cost := h.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		Name:         req.Name,
		Avatar:       req.Avatar,
		BloodGroup:   req.BloodGroup,
		District:     req.District,
		Upazila:      req.Upazila,
		PasswordHash: string(hash),
		Role:         models.RoleDonor,
		Status:       models.UserActive,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		respond.Error(w, r, h.Log, errEmailExists)
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	respond.JSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully!",
		UserID:  u.ID.Hex(),
	})
}
