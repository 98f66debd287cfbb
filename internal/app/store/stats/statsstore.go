// internal/app/store/stats/statsstore.go
package statsstore

import (
	"context"

	donationrequeststore "github.com/dalemusser/bloodhub/internal/app/store/donationrequests"
	fundingstore "github.com/dalemusser/bloodhub/internal/app/store/fundings"
	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Counts is the admin dashboard summary.
type Counts struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalRequests int64   `json:"totalRequests"`
	TotalFunding  float64 `json:"totalFunding"`
}

// Counter counts documents in one collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Summer totals the funding amounts.
type Summer interface {
	Total(ctx context.Context) (float64, error)
}

// Sources are the collections the summary reads.
type Sources struct {
	Users    Counter
	Requests Counter
	Fundings Summer
}

// NewSources builds Sources backed by db.
func NewSources(db *mongo.Database) Sources {
	return Sources{
		Users:    userstore.New(db),
		Requests: donationrequeststore.New(db),
		Fundings: fundingstore.New(db),
	}
}

// Fetch runs the three reads concurrently. Any failure fails the whole
// summary; there are no partial totals.
func Fetch(ctx context.Context, src Sources) (Counts, error) {
	var out Counts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalUsers, err = src.Users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalRequests, err = src.Requests.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalFunding, err = src.Fundings.Total(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return out, nil
}
