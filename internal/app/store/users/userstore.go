package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/system/normalize"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when a user with the email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "donor"|"volunteer"|"admin"`)
	errBadStatus      = errors.New(`status must be "active"|"blocked"`)
)

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByEmail reports whether any user has the normalized email.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts u with role=donor and status=active unless set, normalizing
// email and name. The unique email index turns a concurrent duplicate into
// ErrDuplicateEmail.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.BloodGroup = normalize.BloodGroup(u.BloodGroup)
	if u.Role == "" {
		u.Role = models.RoleDonor
	}
	if u.Status == "" {
		u.Status = models.UserActive
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if !models.IsValidUserStatus(u.Status) {
		return models.User{}, errBadStatus
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ListQuery filters and pages List. Empty Status means all users.
type ListQuery struct {
	Status string
	Skip   int64
	Limit  int64
}

// List returns one page of users, newest first, and the total matching the filter.
func (s *Store) List(ctx context.Context, q ListQuery) ([]models.User, int64, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit).
		SetProjection(bson.M{"passwordHash": 0})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	users := make([]models.User, 0, q.Limit)
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// UpdateStatus sets status and updatedAt. Returns mongo.ErrNoDocuments when
// no user has id.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.IsValidUserStatus(status) {
		return errBadStatus
	}
	return s.set(ctx, id, bson.M{"status": status})
}

// UpdateRole sets role and updatedAt. Returns mongo.ErrNoDocuments when no
// user has id.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if !models.IsValidRole(role) {
		return errBadRole
	}
	return s.set(ctx, id, bson.M{"role": role})
}

func (s *Store) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureAdmin creates an active admin with email, or promotes and reactivates
// the existing user. passwordHash replaces the stored hash when non-empty.
// created reports whether a new user was inserted.
func (s *Store) EnsureAdmin(ctx context.Context, email, name, passwordHash string) (created bool, err error) {
	email = normalize.Email(email)
	now := time.Now().UTC()

	set := bson.M{"role": models.RoleAdmin, "status": models.UserActive, "updatedAt": now}
	onInsert := bson.M{"_id": primitive.NewObjectID(), "createdAt": now}
	if passwordHash != "" {
		set["passwordHash"] = passwordHash
	}
	if name = normalize.Name(name); name != "" {
		set["name"] = name
	} else {
		onInsert["name"] = email
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": set, "$setOnInsert": onInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
