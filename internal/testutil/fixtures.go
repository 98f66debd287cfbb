package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "correct-horse-battery"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts test documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active user with the given role and TestPassword.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, email, role, models.UserActive)
}

// CreateBlockedUser inserts a blocked donor.
func (f *Fixtures) CreateBlockedUser(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, email, models.RoleDonor, models.UserBlocked)
}

func (f *Fixtures) insertUser(ctx context.Context, email, role, status string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Name:         "Test " + role,
		BloodGroup:   "O+",
		District:     "Dhaka",
		Upazila:      "Dhanmondi",
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateDonationRequest inserts a request for requesterEmail with the given
// status and creation time.
func (f *Fixtures) CreateDonationRequest(ctx context.Context, requesterEmail, status string, createdAt time.Time) models.DonationRequest {
	f.t.Helper()

	dr := models.DonationRequest{
		ID:                primitive.NewObjectID(),
		RequesterName:     "Test Requester",
		RequesterEmail:    requesterEmail,
		RecipientName:     "Test Recipient",
		RecipientDistrict: "Dhaka",
		RecipientUpazila:  "Mirpur",
		HospitalName:      "Dhaka Medical College Hospital",
		FullAddress:       "Secretariat Rd, Dhaka",
		BloodGroup:        "A+",
		DonationDate:      "2024-07-01",
		DonationTime:      "10:00",
		DonationStatus:    status,
		CreatedAt:         createdAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := f.db.Collection("donationRequests").InsertOne(ctx, dr); err != nil {
		f.t.Fatalf("failed to create test donation request: %v", err)
	}
	return dr
}

// CreateBlog inserts a blog post with the given status.
func (f *Fixtures) CreateBlog(ctx context.Context, title, status string) models.Blog {
	f.t.Helper()

	b := models.Blog{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Thumbnail: "https://example.com/thumb.png",
		Content:   "<p>" + title + "</p>",
		CreatedBy: "admin@example.com",
		Status:    status,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := f.db.Collection("blog").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test blog: %v", err)
	}
	return b
}

// CreateFunding inserts a funding record of amount.
func (f *Fixtures) CreateFunding(ctx context.Context, amount float64) models.Funding {
	f.t.Helper()

	fu := models.Funding{
		ID:        primitive.NewObjectID(),
		Name:      "Test Funder",
		Email:     "funder@example.com",
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("requests").InsertOne(ctx, fu); err != nil {
		f.t.Fatalf("failed to create test funding: %v", err)
	}
	return fu
}
