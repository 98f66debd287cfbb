package donationrequeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStatusConflict is returned by Transition when the request exists but is
// not in the expected status.
var ErrStatusConflict = errors.New("donation request is not in the expected status")

var errBadStatus = errors.New(`donationStatus must be "pending"|"inprogress"|"done"|"canceled"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("donationRequests")}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// Create inserts dr as a new pending request. createdAt is set here and
// never changed afterwards.
func (s *Store) Create(ctx context.Context, dr models.DonationRequest) (models.DonationRequest, error) {
	dr.ID = primitive.NewObjectID()
	dr.RequesterEmail = normalize.Email(dr.RequesterEmail)
	dr.BloodGroup = normalize.BloodGroup(dr.BloodGroup)
	dr.DonationStatus = models.DonationPending
	dr.CreatedAt = time.Now().UTC()
	dr.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, dr); err != nil {
		return models.DonationRequest{}, err
	}
	return dr, nil
}

// GetByID returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.DonationRequest, error) {
	var dr models.DonationRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&dr); err != nil {
		return nil, err
	}
	return &dr, nil
}

// ListQuery filters and pages List. Empty fields do not filter.
type ListQuery struct {
	RequesterEmail string
	Status         string
	Skip           int64
	Limit          int64
}

func (q ListQuery) filter() bson.M {
	f := bson.M{}
	if q.RequesterEmail != "" {
		f["requesterEmail"] = normalize.Email(q.RequesterEmail)
	}
	if q.Status != "" {
		f["donationStatus"] = q.Status
	}
	return f
}

// List returns one page of requests, newest first, and the total matching
// the filter.
func (s *Store) List(ctx context.Context, q ListQuery) ([]models.DonationRequest, int64, error) {
	filter := q.filter()
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(newestFirst).SetSkip(q.Skip).SetLimit(q.Limit)
	out, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Recent returns up to n of requesterEmail's requests, newest first.
func (s *Store) Recent(ctx context.Context, requesterEmail string, n int64) ([]models.DonationRequest, error) {
	return s.find(ctx,
		bson.M{"requesterEmail": normalize.Email(requesterEmail)},
		options.Find().SetSort(newestFirst).SetLimit(n))
}

// ListByStatus returns every request in status, newest first.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]models.DonationRequest, error) {
	return s.find(ctx, bson.M{"donationStatus": status}, options.Find().SetSort(newestFirst))
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.DonationRequest, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.DonationRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus sets donationStatus unconditionally. Returns mongo.ErrNoDocuments
// when no request has id.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.IsValidDonationStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"donationStatus": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Transition moves the request from one status to another in a single
// conditional update. When nothing matched it distinguishes a missing
// request (mongo.ErrNoDocuments) from one in another status
// (ErrStatusConflict).
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, from, to string) error {
	if !models.IsValidDonationStatus(to) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "donationStatus": from},
		bson.M{"$set": bson.M{"donationStatus": to, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return ErrStatusConflict
}

// Delete removes the request. Returns mongo.ErrNoDocuments when nothing was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the number of donation requests.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
