// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"slices"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/app/system/paging"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

type listResponse struct {
	Events      []audit.Event `json:"events"`
	TotalEvents int64         `json:"totalEvents"`
	Page        int           `json:"page"`
	Limit       int           `json:"limit"`
	TotalPages  int           `json:"totalPages"`
}

// List handles GET /audit-events?category=&eventType=&userId=&start=&end=&page=&limit=.
// start and end are YYYY-MM-DD in UTC; end covers the whole day.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	pg := paging.Parse(r, h.MaxLimit)
	filter.Limit = int64(pg.Limit)
	filter.Offset = pg.Skip()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "auditlog.list")
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	total, err := h.Events.Count(ctx, filter)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Events:      events,
		TotalEvents: total,
		Page:        pg.Page,
		Limit:       pg.Limit,
		TotalPages:  paging.TotalPages(total, pg.Limit),
	})
}

func parseFilter(r *http.Request) (audit.QueryFilter, error) {
	var f audit.QueryFilter

	if c := normalize.Enum(query.Get(r, "category")); c != "" {
		if !slices.Contains(audit.Categories, c) {
			return f, apperr.Validation("Invalid category")
		}
		f.Category = c
	}
	f.EventType = normalize.Enum(query.Get(r, "eventType"))

	if s := query.Get(r, "userId"); s != "" {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return f, apperr.InvalidID()
		}
		f.UserID = &id
	}
	if s := query.Get(r, "start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, apperr.Validation("start must be YYYY-MM-DD")
		}
		f.StartTime = &t
	}
	if s := query.Get(r, "end"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, apperr.Validation("end must be YYYY-MM-DD")
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		f.EndTime = &endOfDay
	}
	return f, nil
}
