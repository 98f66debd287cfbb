// internal/app/features/blogs/handler.go
package blogs

import (
	"context"

	blogstore "github.com/dalemusser/bloodhub/internal/app/store/blogs"
	"github.com/dalemusser/bloodhub/internal/app/system/auditlog"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Store is the slice of the blog store the handlers need.
type Store interface {
	Create(ctx context.Context, b models.Blog) (models.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	List(ctx context.Context, status string) ([]models.Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, upd blogstore.Update) error
	Transition(ctx context.Context, id primitive.ObjectID, from, to string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler owns the content-management blog endpoints.
type Handler struct {
	Blogs Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Blogs: blogstore.New(db),
		Audit: audit,
		Log:   logger,
	}
}
