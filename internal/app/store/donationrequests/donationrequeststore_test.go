package donationrequeststore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	donationrequeststore "github.com/dalemusser/bloodhub/internal/app/store/donationrequests"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/dalemusser/bloodhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStore(t *testing.T) (*donationrequeststore.Store, *testutil.Fixtures, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	return donationrequeststore.New(db), testutil.NewFixtures(t, db), ctx
}

func TestStore_Create_ForcesPending(t *testing.T) {
	store, _, ctx := newStore(t)

	created, err := store.Create(ctx, models.DonationRequest{
		RequesterEmail: "Donor@Example.com",
		RecipientName:  "Karim",
		BloodGroup:     "ab-",
		DonationStatus: models.DonationDone,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.DonationStatus != models.DonationPending {
		t.Errorf("status = %q, want pending", created.DonationStatus)
	}
	if created.RequesterEmail != "donor@example.com" || created.BloodGroup != "AB-" {
		t.Errorf("fields not normalized: %+v", created)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.RecipientName != "Karim" || got.CreatedAt.IsZero() {
		t.Errorf("unexpected stored request: %+v", got)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	store, _, ctx := newStore(t)
	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_List_PagesNewestFirst(t *testing.T) {
	store, fx, ctx := newStore(t)
	base := time.Now().Add(-time.Hour)
	var ids []primitive.ObjectID
	for i := 0; i < 5; i++ {
		dr := fx.CreateDonationRequest(ctx, "mine@example.com", models.DonationPending, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, dr.ID)
	}
	fx.CreateDonationRequest(ctx, "other@example.com", models.DonationDone, base)

	page1, total, err := store.List(ctx, donationrequeststore.ListQuery{RequesterEmail: "MINE@example.com", Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 || len(page1) != 2 {
		t.Fatalf("total=%d len=%d, want 5/2", total, len(page1))
	}
	if page1[0].ID != ids[4] || page1[1].ID != ids[3] {
		t.Error("expected newest first")
	}

	page3, _, err := store.List(ctx, donationrequeststore.ListQuery{RequesterEmail: "mine@example.com", Skip: 4, Limit: 2})
	if err != nil {
		t.Fatalf("List page 3 failed: %v", err)
	}
	if len(page3) != 1 || page3[0].ID != ids[0] {
		t.Errorf("page 3 = %v", page3)
	}

	done, total, err := store.List(ctx, donationrequeststore.ListQuery{Status: models.DonationDone, Limit: 10})
	if err != nil {
		t.Fatalf("List done failed: %v", err)
	}
	if total != 1 || len(done) != 1 {
		t.Errorf("status filter: total=%d len=%d", total, len(done))
	}
}

func TestStore_Recent(t *testing.T) {
	store, fx, ctx := newStore(t)
	base := time.Now().Add(-time.Hour)
	var newest primitive.ObjectID
	for i := 0; i < 5; i++ {
		newest = fx.CreateDonationRequest(ctx, "d@example.com", models.DonationPending, base.Add(time.Duration(i)*time.Minute)).ID
	}

	got, err := store.Recent(ctx, "d@example.com", 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 || got[0].ID != newest {
		t.Errorf("Recent returned %d items, first %v", len(got), got)
	}

	none, err := store.Recent(ctx, "nobody@example.com", 3)
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("Recent(nobody) = %v, %v", none, err)
	}
}

func TestStore_ListByStatus(t *testing.T) {
	store, fx, ctx := newStore(t)
	now := time.Now()
	older := fx.CreateDonationRequest(ctx, "a@example.com", models.DonationPending, now.Add(-2*time.Minute))
	newer := fx.CreateDonationRequest(ctx, "b@example.com", models.DonationPending, now.Add(-time.Minute))
	fx.CreateDonationRequest(ctx, "c@example.com", models.DonationInProgress, now)

	got, err := store.ListByStatus(ctx, models.DonationPending)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Errorf("ListByStatus = %v", got)
	}
}

func TestStore_SetStatus(t *testing.T) {
	store, fx, ctx := newStore(t)
	dr := fx.CreateDonationRequest(ctx, "a@example.com", models.DonationDone, time.Now())

	// Unconditional: done -> pending is allowed here.
	if err := store.SetStatus(ctx, dr.ID, models.DonationPending); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, _ := store.GetByID(ctx, dr.ID)
	if got.DonationStatus != models.DonationPending || got.UpdatedAt == nil {
		t.Errorf("after SetStatus: %+v", got)
	}
	if !got.CreatedAt.Equal(dr.CreatedAt) {
		t.Error("createdAt must not change")
	}

	if err := store.SetStatus(ctx, primitive.NewObjectID(), models.DonationDone); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("SetStatus(missing) = %v", err)
	}
	if err := store.SetStatus(ctx, dr.ID, "claimed"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestStore_Transition(t *testing.T) {
	store, fx, ctx := newStore(t)
	inProgress := fx.CreateDonationRequest(ctx, "a@example.com", models.DonationInProgress, time.Now())
	pending := fx.CreateDonationRequest(ctx, "b@example.com", models.DonationPending, time.Now())

	if err := store.Transition(ctx, inProgress.ID, models.DonationInProgress, models.DonationDone); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	got, _ := store.GetByID(ctx, inProgress.ID)
	if got.DonationStatus != models.DonationDone {
		t.Errorf("status = %q, want done", got.DonationStatus)
	}

	err := store.Transition(ctx, pending.ID, models.DonationInProgress, models.DonationCanceled)
	if !errors.Is(err, donationrequeststore.ErrStatusConflict) {
		t.Errorf("Transition(pending) = %v, want ErrStatusConflict", err)
	}
	got, _ = store.GetByID(ctx, pending.ID)
	if got.DonationStatus != models.DonationPending {
		t.Error("conflicting transition must leave the status unchanged")
	}

	err = store.Transition(ctx, primitive.NewObjectID(), models.DonationInProgress, models.DonationDone)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Transition(missing) = %v, want ErrNoDocuments", err)
	}
}

func TestStore_DeleteAndCount(t *testing.T) {
	store, fx, ctx := newStore(t)
	dr := fx.CreateDonationRequest(ctx, "a@example.com", models.DonationPending, time.Now())
	fx.CreateDonationRequest(ctx, "b@example.com", models.DonationPending, time.Now())

	if n, _ := store.Count(ctx); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
	if err := store.Delete(ctx, dr.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, dr.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("second Delete = %v, want ErrNoDocuments", err)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count after delete = %d, want 1", n)
	}
}
