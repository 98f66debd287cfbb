package auditlog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/features/auditlog"
	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	"github.com/dalemusser/bloodhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStore struct {
	events []audit.Event
	got    audit.QueryFilter
	err    error
}

func (f *fakeStore) Query(_ context.Context, filter audit.QueryFilter) ([]audit.Event, error) {
	f.got = filter
	if f.err != nil {
		return nil, f.err
	}
	end := int(filter.Offset) + int(filter.Limit)
	if end > len(f.events) {
		end = len(f.events)
	}
	if int(filter.Offset) >= end {
		return []audit.Event{}, nil
	}
	return f.events[filter.Offset:end], nil
}

func (f *fakeStore) Count(context.Context, audit.QueryFilter) (int64, error) {
	return int64(len(f.events)), f.err
}

func newRouter(store *fakeStore, admin func(http.Handler) http.Handler) http.Handler {
	h := &auditlog.Handler{Events: store, Log: zap.NewNop(), MaxLimit: 50}
	r := chi.NewRouter()
	auditlog.MountRoutes(r, h, admin)
	return r
}

func passThrough(next http.Handler) http.Handler { return next }

type listBody struct {
	Events      []audit.Event `json:"events"`
	TotalEvents int64         `json:"totalEvents"`
	Page        int           `json:"page"`
	Limit       int           `json:"limit"`
	TotalPages  int           `json:"totalPages"`
}

func TestList_Pagination(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 5; i++ {
		store.events = append(store.events, audit.Event{ID: primitive.NewObjectID(), EventType: audit.EventLoginSuccess})
	}

	rec := httptest.NewRecorder()
	newRouter(store, passThrough).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit-events?page=2&limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	testutil.DecodeJSON(t, rec, &body)
	assert.Len(t, body.Events, 2)
	assert.Equal(t, int64(5), body.TotalEvents)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, int64(2), store.got.Offset)
}

func TestList_Filters(t *testing.T) {
	store := &fakeStore{}
	uid := primitive.NewObjectID()
	target := "/audit-events?category=AUTH&eventType=login_success&userId=" + uid.Hex() + "&start=2025-01-01&end=2025-01-31"

	rec := httptest.NewRecorder()
	newRouter(store, passThrough).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, audit.CategoryAuth, store.got.Category)
	assert.Equal(t, audit.EventLoginSuccess, store.got.EventType)
	require.NotNil(t, store.got.UserID)
	assert.Equal(t, uid, *store.got.UserID)
	require.NotNil(t, store.got.StartTime)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *store.got.StartTime)
	require.NotNil(t, store.got.EndTime)
	assert.Equal(t, 31, store.got.EndTime.Day())
	assert.Equal(t, 23, store.got.EndTime.Hour())
}

func TestList_BadInput(t *testing.T) {
	for _, target := range []string{
		"/audit-events?category=security",
		"/audit-events?userId=nope",
		"/audit-events?start=01/02/2025",
		"/audit-events?end=tomorrow",
	} {
		rec := httptest.NewRecorder()
		newRouter(&fakeStore{}, passThrough).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestList_StoreErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeStore{err: errors.New("down")}, passThrough).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit-events", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "down")
}

func TestList_AdminGuardApplies(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusForbidden) })
	}
	rec := httptest.NewRecorder()
	newRouter(&fakeStore{}, deny).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit-events", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
