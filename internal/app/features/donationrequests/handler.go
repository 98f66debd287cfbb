// internal/app/features/donationrequests/handler.go
package donationrequests

import (
	"context"

	"github.com/dalemusser/bloodhub/internal/app/policy/donationpolicy"
	donationrequeststore "github.com/dalemusser/bloodhub/internal/app/store/donationrequests"
	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/auditlog"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RecentLimit is how many requests the donor dashboard shows.
const RecentLimit = 3

// RequestStore is the slice of the donation request store the handlers need.
type RequestStore interface {
	donationpolicy.Updater
	Create(ctx context.Context, dr models.DonationRequest) (models.DonationRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.DonationRequest, error)
	List(ctx context.Context, q donationrequeststore.ListQuery) ([]models.DonationRequest, int64, error)
	Recent(ctx context.Context, requesterEmail string, n int64) ([]models.DonationRequest, error)
	ListByStatus(ctx context.Context, status string) ([]models.DonationRequest, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserLookup resolves requesters by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler owns the donation request endpoints.
type Handler struct {
	Requests RequestStore
	Users    UserLookup
	Policy   donationpolicy.StatusPolicy
	Audit    *auditlog.Logger
	Log      *zap.Logger
	MaxLimit int
}

// NewHandler constructs a donation requests Handler. policy selects how
// status updates are validated and applied.
func NewHandler(db *mongo.Database, policy donationpolicy.StatusPolicy, maxLimit int, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Requests: donationrequeststore.New(db),
		Users:    userstore.New(db),
		Policy:   policy,
		Audit:    audit,
		Log:      logger,
		MaxLimit: maxLimit,
	}
}
