// internal/app/features/donationrequests/routes.go
package donationrequests

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the donation request endpoints on r.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/donation-requests", h.Create)
	r.Get("/donation-requests/{id}", h.Get)
	r.Patch("/donation-requests/{id}/status", h.UpdateStatus)
	r.Delete("/donation-requests/{id}", h.Delete)

	r.Get("/my-donation-requests", h.ListMine)
	r.Get("/all-donation-requests", h.ListAll)
	r.Get("/recent-donation-requests", h.Recent)
	r.Get("/pending", h.Pending)
}
