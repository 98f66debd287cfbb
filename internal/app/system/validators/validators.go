// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/bloodhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the app's collections (if missing) and attaches
// JSON-Schema validators. Servers that do not support collMod validators are
// logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("donationRequests", donationRequestsSchema())
	ensure("blog", blogSchema())
	ensure("requests", fundingsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection returns created==true only if it actually created name.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

// setValidator uses validationLevel=moderate so documents written before the
// validator existed are not rejected on unrelated updates.
func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrorMatches(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enum(values []string) bson.A {
	out := make(bson.A, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "name", "role", "status", "createdAt"},
			"properties": bson.M{
				"email":        nonBlank,
				"name":         nonBlank,
				"avatar":       bson.M{"bsonType": "string"},
				"bloodGroup":   bson.M{"enum": enum(models.BloodGroups)},
				"district":     bson.M{"bsonType": "string"},
				"upazila":      bson.M{"bsonType": "string"},
				"passwordHash": bson.M{"bsonType": "string"},
				"role":         bson.M{"enum": enum(models.Roles)},
				"status":       bson.M{"enum": enum(models.UserStatuses)},
				"createdAt":    bson.M{"bsonType": "date"},
				"updatedAt":    bson.M{"bsonType": "date"},
			},
		},
	}
}

func donationRequestsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"requesterEmail", "recipientName", "bloodGroup", "donationStatus", "createdAt"},
			"properties": bson.M{
				"requesterName":  bson.M{"bsonType": "string"},
				"requesterEmail": nonBlank,
				"recipientName":  nonBlank,
				"bloodGroup":     bson.M{"enum": enum(models.BloodGroups)},
				"donationStatus": bson.M{"enum": enum(models.DonationStatuses)},
				"createdAt":      bson.M{"bsonType": "date"},
				"updatedAt":      bson.M{"bsonType": "date"},
			},
		},
	}
}

func blogSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "content", "createdBy", "status", "createdAt"},
			"properties": bson.M{
				"title":     nonBlank,
				"thumbnail": bson.M{"bsonType": "string"},
				"content":   bson.M{"bsonType": "string"},
				"createdBy": nonBlank,
				"status":    bson.M{"enum": enum(models.BlogStatuses)},
				"createdAt": bson.M{"bsonType": "date"},
				"updatedAt": bson.M{"bsonType": "date"},
			},
		},
	}
}

func fundingsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"amount", "createdAt"},
			"properties": bson.M{
				"name":      bson.M{"bsonType": "string"},
				"email":     bson.M{"bsonType": "string"},
				"amount":    bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "exclusiveMinimum": 0},
				"createdAt": bson.M{"bsonType": "date"},
			},
		},
	}
}
