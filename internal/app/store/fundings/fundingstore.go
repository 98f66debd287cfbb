package fundingstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection holds funding records. The name predates this service and is
// kept so existing databases aggregate correctly.
const Collection = "requests"

var errBadAmount = errors.New("amount must be greater than zero")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a funding record.
func (s *Store) Create(ctx context.Context, f models.Funding) (models.Funding, error) {
	if f.Amount <= 0 {
		return models.Funding{}, errBadAmount
	}
	f.ID = primitive.NewObjectID()
	f.Email = normalize.Email(f.Email)
	f.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Funding{}, err
	}
	return f, nil
}

// Total sums amount across all records; 0 when there are none. Amounts are
// converted to double first so int, long and decimal values sum into a
// float64. Missing or unconvertible amounts count as 0.
func (s *Store) Total(ctx context.Context) (float64, error) {
	asDouble := bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: "$amount"},
		{Key: "to", Value: "double"},
		{Key: "onError", Value: 0.0},
		{Key: "onNull", Value: 0.0},
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: asDouble}}},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
