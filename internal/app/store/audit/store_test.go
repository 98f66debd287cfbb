package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	"github.com/dalemusser/bloodhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Log_FillsIDAndTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	if err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		IP:        "192.168.1.1",
		Success:   true,
	}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be generated")
	}
	if events[0].Timestamp.Before(before) {
		t.Errorf("timestamp %v not set", events[0].Timestamp)
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := primitive.NewObjectID()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	seed := []audit.Event{
		{Timestamp: base, Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &alice, Success: true},
		{Timestamp: base.Add(time.Hour), Category: audit.CategoryAuth, EventType: audit.EventLoginFailedBadPassword, UserID: &alice},
		{Timestamp: base.Add(2 * time.Hour), Category: audit.CategoryAdmin, EventType: audit.EventBlogPublished, Success: true},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter audit.QueryFilter
		want   int
	}{
		{"all", audit.QueryFilter{}, 3},
		{"by category", audit.QueryFilter{Category: audit.CategoryAuth}, 2},
		{"by type", audit.QueryFilter{EventType: audit.EventBlogPublished}, 1},
		{"by user", audit.QueryFilter{UserID: &alice}, 2},
		{"by start", audit.QueryFilter{StartTime: ptr(base.Add(30 * time.Minute))}, 2},
		{"by end", audit.QueryFilter{EndTime: ptr(base.Add(30 * time.Minute))}, 1},
		{"limit", audit.QueryFilter{Limit: 2}, 2},
		{"offset", audit.QueryFilter{Offset: 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}

	events, _ := store.Query(ctx, audit.QueryFilter{})
	if events[0].EventType != audit.EventBlogPublished {
		t.Errorf("expected newest first, got %s", events[0].EventType)
	}

	n, err := store.Count(ctx, audit.QueryFilter{Category: audit.CategoryAuth, Limit: 1})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestStore_Query_EmptyIsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty slice, got %#v", events)
	}
}

func ptr[T any](v T) *T { return &v }

func TestStore_DeleteBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := store.Log(ctx, audit.Event{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Category:  audit.CategoryAuth,
			EventType: audit.EventLogout,
		}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	deleted, err := store.DeleteBefore(ctx, base.Add(36*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	left, err := store.Count(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if left != 1 {
		t.Errorf("remaining = %d, want 1", left)
	}
}
