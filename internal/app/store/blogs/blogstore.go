package blogstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrWrongStatus is returned by Transition when the blog exists but is not
// in the expected status (already published, already a draft).
var ErrWrongStatus = errors.New("blog is not in the expected status")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blog")}
}

// Create inserts b as a draft.
func (s *Store) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	b.ID = primitive.NewObjectID()
	b.Status = models.BlogDraft
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Blog{}, err
	}
	return b, nil
}

// GetByID returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every blog newest first, filtered by status when non-empty.
func (s *Store) List(ctx context.Context, status string) ([]models.Blog, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Blog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the editable fields. All are overwritten.
type Update struct {
	Title     string
	Thumbnail string
	Content   string
	CreatedBy string
}

// Update overwrites the editable fields and sets updatedAt. Status and
// createdAt are untouched. Returns mongo.ErrNoDocuments when no blog has id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":     upd.Title,
		"thumbnail": upd.Thumbnail,
		"content":   upd.Content,
		"createdBy": upd.CreatedBy,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Transition sets status to `to` only if it is currently `from`. On no match
// it returns mongo.ErrNoDocuments for a missing blog and ErrWrongStatus for
// one in another status.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, from, to string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}})
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
	return ErrWrongStatus
}

// Delete returns mongo.ErrNoDocuments when nothing was deleted.
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
