package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/bloodhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mutate func(*AppConfig)) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := validAppConfig()
	cfg.SessionMaxAge = time.Hour
	cfg.LoginRateLimit = 10
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	if mutate != nil {
		mutate(&cfg)
	}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, cfg, DBDeps{MongoClient: db.Client(), MongoDatabase: db}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Shutdown(t.Context(), nil, cfg, DBDeps{}, testLogger()) })
	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBuildHandler_Root(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestBuildHandler_HealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"connected"`)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestBuildHandler_UnknownRouteIsJSON404(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/no-such-thing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Route not found"`)
}

func TestBuildHandler_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/donation-requests", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestBuildHandler_AdminGuard(t *testing.T) {
	open := newTestRouter(t, nil)
	rec := serve(open, httptest.NewRequest(http.MethodGet, "/dashboard-statistics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	guarded := newTestRouter(t, func(c *AppConfig) { c.EnforceRoles = true })
	rec = serve(guarded, httptest.NewRequest(http.MethodGet, "/dashboard-statistics", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuildHandler_RegisterAndLogin(t *testing.T) {
	h := newTestRouter(t, nil)

	body := `{"email":"donor@example.com","name":"Donor","bloodGroup":"A+","district":"Dhaka","upazila":"Mirpur","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(h, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"donor@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"token"`)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/audit-events?category=auth", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"eventType":"login_success"`)
}
