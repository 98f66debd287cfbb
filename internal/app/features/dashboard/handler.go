// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	statsstore "github.com/dalemusser/bloodhub/internal/app/store/stats"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Sources statsstore.Sources
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Sources: statsstore.NewSources(db),
		Log:     logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard-statistics                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeStatistics answers {totalUsers, totalRequests, totalFunding}. Nothing
// is cached; every call reads the collections.
func (h *Handler) ServeStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard statistics")
	defer cancel()

	counts, err := statsstore.Fetch(ctx, h.Sources)
	if err != nil {
		respond.Error(w, r, h.Log, apperr.Internal(err))
		return
	}
	respond.JSON(w, http.StatusOK, counts)
}
