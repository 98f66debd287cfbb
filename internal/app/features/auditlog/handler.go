// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Store is the read side of the audit trail.
type Store interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	Count(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

type Handler struct {
	Events   Store
	Log      *zap.Logger
	MaxLimit int
}

func NewHandler(db *mongo.Database, maxLimit int, logger *zap.Logger) *Handler {
	return &Handler{
		Events:   audit.New(db),
		Log:      logger,
		MaxLimit: maxLimit,
	}
}
