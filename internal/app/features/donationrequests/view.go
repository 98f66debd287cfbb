// internal/app/features/donationrequests/view.go
package donationrequests

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var errRequestNotFound = apperr.NotFound("Donation request not found")

// Get handles GET /donation-requests/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "donation_requests.get")
	defer cancel()

	dr, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}
	respond.JSON(w, http.StatusOK, dr)
}

// Delete handles DELETE /donation-requests/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "donation_requests.delete")
	defer cancel()

	if err := h.Requests.Delete(ctx, id); err != nil {
		respond.Error(w, r, h.Log, notFoundOr(err))
		return
	}

	h.Log.Info("donation request deleted", zap.String("request_id", id.Hex()))
	h.Audit.DonationDeleted(ctx, r, id)
	respond.Message(w, http.StatusOK, "Donation request deleted successfully")
}

func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errRequestNotFound
	}
	return apperr.Internal(err)
}
