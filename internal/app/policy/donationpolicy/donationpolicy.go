// internal/app/policy/donationpolicy/donationpolicy.go
package donationpolicy

import (
	"context"
	"errors"

	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStatusNotAllowed is returned by Apply when the requested status is not a
// target the policy permits.
var ErrStatusNotAllowed = errors.New("status is not a permitted target")

// Updater is the store surface Apply writes through.
type Updater interface {
	// SetStatus sets the status unconditionally.
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	// Transition sets the status only when the request is currently in from.
	Transition(ctx context.Context, id primitive.ObjectID, from, to string) error
}

// StatusPolicy governs PATCH /donation-requests/{id}/status.
//
// Permissive accepts any of the four statuses and writes unconditionally.
// Strict accepts only done and canceled, and only for a request that is
// currently inprogress; the check and the write are one conditional update.
type StatusPolicy struct {
	Strict bool
}

// Targets lists the statuses a caller may ask for.
func (p StatusPolicy) Targets() []string {
	if p.Strict {
		return []string{models.DonationDone, models.DonationCanceled}
	}
	return models.DonationStatuses
}

// Allows reports whether status is one of Targets.
func (p StatusPolicy) Allows(status string) bool {
	for _, s := range p.Targets() {
		if s == status {
			return true
		}
	}
	return false
}

// Apply writes status through u. Errors from u pass through unchanged, so
// callers see mongo.ErrNoDocuments for a missing request and the store's
// conflict sentinel when a strict transition does not apply.
func (p StatusPolicy) Apply(ctx context.Context, u Updater, id primitive.ObjectID, status string) error {
	if !p.Allows(status) {
		return ErrStatusNotAllowed
	}
	if p.Strict {
		return u.Transition(ctx, id, models.DonationInProgress, status)
	}
	return u.SetStatus(ctx, id, status)
}

// CanCreateRequest reports whether requester may raise a donation request.
// An unknown requester (nil) may not.
func CanCreateRequest(requester *models.User) bool {
	return requester != nil && !requester.IsBlocked()
}

// CanViewRecent reports whether u may read the donor dashboard's recent
// requests. Only donors can.
func CanViewRecent(u *models.User) bool {
	return u != nil && u.Role == models.RoleDonor
}
