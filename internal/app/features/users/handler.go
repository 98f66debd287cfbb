// internal/app/features/users/handler.go
package users

import (
	"context"

	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/auditlog"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Store is the slice of the user store the handlers need.
type Store interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, q userstore.ListQuery) ([]models.User, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
}

// Handler owns the user registration, lookup and administration endpoints.
type Handler struct {
	Users    Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
	MaxLimit int // upper bound for ?limit=
	HashCost int // bcrypt cost for new passwords
}

// NewHandler constructs a users Handler backed by the users collection.
func NewHandler(db *mongo.Database, maxLimit int, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Audit:    audit,
		Log:      logger,
		MaxLimit: maxLimit,
		HashCost: bcrypt.DefaultCost,
	}
}
