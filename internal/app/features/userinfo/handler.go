// internal/app/features/userinfo/handler.go
package userinfo

import (
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
)

// Handler reports who the caller is signed in as.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type userInfo struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
}

// ServeUserInfo always answers 200. Anonymous callers get
// isAuthenticated=false and empty identity fields so clients can probe
// their session without handling a 401.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	a, ok := auth.CurrentActor(r)
	if !ok {
		respond.JSON(w, http.StatusOK, userInfo{})
		return
	}
	respond.JSON(w, http.StatusOK, userInfo{
		IsAuthenticated: true,
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Role:            a.Role,
	})
}
