// internal/app/features/donationrequests/status.go
package donationrequests

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/policy/donationpolicy"
	donationrequeststore "github.com/dalemusser/bloodhub/internal/app/store/donationrequests"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/pathid"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /donation-requests/{id}/status under h.Policy.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathid.ObjectID(r, "id")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var req statusRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	status := normalize.Enum(req.Status)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "donation_requests.update_status")
	defer cancel()

	err = h.Policy.Apply(ctx, h.Requests, id, status)
	switch {
	case err == nil:
	case errors.Is(err, donationpolicy.ErrStatusNotAllowed):
		respond.Error(w, r, h.Log, apperr.Validation("Invalid status update"))
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		respond.Error(w, r, h.Log, errRequestNotFound)
		return
	case errors.Is(err, donationrequeststore.ErrStatusConflict):
		respond.Error(w, r, h.Log,
			apperr.Conflict("Cannot update donation request in current status").WithCode(apperr.CodeInvalidTransition))
		return
	default:
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	h.Log.Info("donation request status updated",
		zap.String("request_id", id.Hex()),
		zap.String("status", status),
		zap.Bool("strict", h.Policy.Strict))
	h.Audit.DonationStatusChanged(ctx, r, id, status)
	respond.Message(w, http.StatusOK, "Donation request status updated successfully")
}
