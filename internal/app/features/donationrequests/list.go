// internal/app/features/donationrequests/list.go
package donationrequests

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/policy/donationpolicy"
	donationrequeststore "github.com/dalemusser/bloodhub/internal/app/store/donationrequests"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/paging"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
)

type mineResponse struct {
	Data          []models.DonationRequest `json:"data"`
	CurrentPage   int                      `json:"currentPage"`
	Page          int                      `json:"page"`
	Limit         int                      `json:"limit"`
	TotalPages    int                      `json:"totalPages"`
	TotalRequests int64                    `json:"totalRequests"`
}

type allResponse struct {
	Requests      []models.DonationRequest `json:"requests"`
	TotalRequests int64                    `json:"totalRequests"`
	Page          int                      `json:"page"`
	Limit         int                      `json:"limit"`
	TotalPages    int                      `json:"totalPages"`
}

// statusFilter reads ?status=. Empty means no filter; anything else must be a
// known donation status.
func statusFilter(r *http.Request) (string, error) {
	status := normalize.Enum(query.Get(r, "status"))
	if status != "" && !models.IsValidDonationStatus(status) {
		return "", apperr.Validation("Invalid status")
	}
	return status, nil
}

// ListMine handles GET /my-donation-requests?email=&status=&page=&limit=.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(query.Get(r, "email"))
	if email == "" {
		respond.Error(w, r, h.Log, apperr.Validation("User email is required."))
		return
	}
	status, err := statusFilter(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	pg := paging.Parse(r, h.MaxLimit)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "donation_requests.list_mine")
	defer cancel()

	rows, total, err := h.Requests.List(ctx, donationrequeststore.ListQuery{
		RequesterEmail: email,
		Status:         status,
		Skip:           pg.Skip(),
		Limit:          int64(pg.Limit),
	})
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, mineResponse{
		Data:          rows,
		CurrentPage:   pg.Page,
		Page:          pg.Page,
		Limit:         pg.Limit,
		TotalPages:    paging.TotalPages(total, pg.Limit),
		TotalRequests: total,
	})
}

// ListAll handles GET /all-donation-requests?status=&page=&limit=.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	status, err := statusFilter(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	pg := paging.Parse(r, h.MaxLimit)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "donation_requests.list_all")
	defer cancel()

	rows, total, err := h.Requests.List(ctx, donationrequeststore.ListQuery{
		Status: status,
		Skip:   pg.Skip(),
		Limit:  int64(pg.Limit),
	})
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, allResponse{
		Requests:      rows,
		TotalRequests: total,
		Page:          pg.Page,
		Limit:         pg.Limit,
		TotalPages:    paging.TotalPages(total, pg.Limit),
	})
}

// Recent handles GET /recent-donation-requests?email=. Only donors get an
// answer: their RecentLimit newest requests.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(query.Get(r, "email"))
	if email == "" {
		respond.Error(w, r, h.Log, apperr.Validation("User email is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "donation_requests.recent")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	if !donationpolicy.CanViewRecent(u) {
		respond.Error(w, r, h.Log, apperr.Forbidden("Unauthorized access"))
		return
	}

	rows, err := h.Requests.Recent(ctx, email, RecentLimit)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}

// Pending handles GET /pending: every pending request, newest first.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "donation_requests.pending")
	defer cancel()

	rows, err := h.Requests.ListByStatus(ctx, models.DonationPending)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}
