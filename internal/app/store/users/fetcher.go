package userstore

import (
	"context"

	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Fetcher implements auth.ActorFetcher against the users collection.
type Fetcher struct {
	users *mongo.Collection
	log   *zap.Logger
}

func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{users: db.Collection("users"), log: logger}
}

// FetchActor returns nil if the id is malformed, the user is missing or
// blocked, or the lookup fails.
func (f *Fetcher) FetchActor(ctx context.Context, userID string) *auth.Actor {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"_id":    1,
		"email":  1,
		"name":   1,
		"role":   1,
		"status": 1,
	})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		if err != mongo.ErrNoDocuments && f.log != nil {
			f.log.Warn("actor lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	if u.IsBlocked() {
		return nil
	}

	return &auth.Actor{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
