// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/auditlog"
	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/dalemusser/bloodhub/internal/app/system/ratelimit"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserLookup finds accounts by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Sessions issues the credentials handed back on sign-in. Satisfied by
// *auth.SessionManager.
type Sessions interface {
	IssueToken(userID string) (string, error)
	SignIn(w http.ResponseWriter, r *http.Request, userID string) error
	SignOut(w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	Users    UserLookup
	Sessions Sessions
	Limiter  *ratelimit.LoginLimiter
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, limiter *ratelimit.LoginLimiter, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Sessions: sm,
		Limiter:  limiter,
		Audit:    audit,
		Log:      logger,
	}
}
