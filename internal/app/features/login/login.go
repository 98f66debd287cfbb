// internal/app/features/login/login.go
package login

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/ratelimit"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

var errBadCredentials = apperr.Unauthorized("Invalid email or password")

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleLogin verifies email and password and answers a bearer token plus a
// session cookie. The password is checked before the account status, so a
// blocked account is only revealed to someone who knows its password.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, r, h.Log, apperr.Validation("Email and password are required"))
		return
	}

	if h.Limiter != nil {
		if ok, reason, retryAfter := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited",
				zap.String("email", email),
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.Duration("retry_after", retryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			h.Audit.LoginFailed(r.Context(), r, audit.EventLoginFailedRateLimit, nil, email, "rate limited")
			respond.Error(w, r, h.Log,
				apperr.New(apperr.KindTooManyRequests, reason).WithCode(apperr.CodeRateLimited))
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Info("login failed: unknown email", zap.String("email", email))
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserNotFound, nil, email, "user not found")
		h.recordFailure(email)
		respond.Error(w, r, h.Log, errBadCredentials)
		return
	}
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		h.Log.Info("login failed: bad password", zap.String("user_id", u.ID.Hex()))
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedBadPassword, &u.ID, email, "wrong password")
		h.recordFailure(email)
		respond.Error(w, r, h.Log, errBadCredentials)
		return
	}
	if u.IsBlocked() {
		h.Log.Info("login refused: account blocked", zap.String("user_id", u.ID.Hex()))
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedBlocked, &u.ID, email, "user blocked")
		respond.Error(w, r, h.Log, apperr.Forbidden("Your account has been blocked"))
		return
	}

	token, err := h.Sessions.IssueToken(u.ID.Hex())
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	h.Audit.LoginSuccess(ctx, r, u.ID, email)
	respond.JSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token, User: u})
}

func (h *Handler) recordFailure(email string) {
	if h.Limiter != nil {
		h.Limiter.RecordFailure(email)
	}
}

// HandleLogout expires the session cookie. Bearer tokens are stateless and
// stay valid until they expire.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if _, ok := auth.CurrentActor(r); ok {
		h.Audit.Logout(r.Context(), r)
	}
	respond.Message(w, http.StatusOK, "Logged out")
}
