// internal/app/features/donationrequests/create.go
package donationrequests

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/policy/donationpolicy"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	RequesterName     string `json:"requesterName" validate:"required"`
	RequesterEmail    string `json:"requesterEmail" validate:"required,email"`
	RecipientName     string `json:"recipientName" validate:"required"`
	RecipientDistrict string `json:"recipientDistrict" validate:"required"`
	RecipientUpazila  string `json:"recipientUpazila" validate:"required"`
	HospitalName      string `json:"hospitalName" validate:"required"`
	FullAddress       string `json:"fullAddress" validate:"required"`
	BloodGroup        string `json:"bloodGroup" validate:"required,bloodgroup"`
	DonationDate      string `json:"donationDate" validate:"required"`
	DonationTime      string `json:"donationTime" validate:"required"`
	RequestMessage    string `json:"requestMessage" validate:"max=2000"`
}

type createResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// Create handles POST /donation-requests. The requester must be a registered,
// non-blocked user; otherwise nothing is inserted and the answer is 403.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	req.RequesterEmail = normalize.Email(req.RequesterEmail)
	req.RequesterName = normalize.Name(req.RequesterName)
	req.RecipientName = normalize.Name(req.RecipientName)
	req.BloodGroup = normalize.BloodGroup(req.BloodGroup)
	if err := respond.Validate(&req); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "donation_requests.create")
	defer cancel()

	requester, err := h.Users.GetByEmail(ctx, req.RequesterEmail)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if !donationpolicy.CanCreateRequest(requester) {
		h.Log.Info("donation request refused",
			zap.String("requester", req.RequesterEmail),
			zap.Bool("known", requester != nil))
		respond.Error(w, r, h.Log, apperr.Forbidden("Blocked users cannot create donation requests."))
		return
	}

	dr, err := h.Requests.Create(ctx, models.DonationRequest{
		RequesterName:     req.RequesterName,
		RequesterEmail:    req.RequesterEmail,
		RecipientName:     req.RecipientName,
		RecipientDistrict: req.RecipientDistrict,
		RecipientUpazila:  req.RecipientUpazila,
		HospitalName:      req.HospitalName,
		FullAddress:       req.FullAddress,
		BloodGroup:        req.BloodGroup,
		DonationDate:      req.DonationDate,
		DonationTime:      req.DonationTime,
		RequestMessage:    req.RequestMessage,
	})
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusCreated, createResponse{
		Message:   "Donation request created successfully!",
		RequestID: dr.ID.Hex(),
	})
}
