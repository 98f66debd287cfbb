package userinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/bloodhub/internal/app/features/userinfo"
	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, req *http.Request) map[string]any {
	t.Helper()
	r := chi.NewRouter()
	userinfo.MountRoutes(r, userinfo.NewHandler())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServeUserInfo_Anonymous(t *testing.T) {
	body := serve(t, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, false, body["isAuthenticated"])
	assert.Equal(t, "", body["email"])
	assert.Equal(t, "", body["role"])
}

func TestServeUserInfo_SignedIn(t *testing.T) {
	req := auth.WithActor(httptest.NewRequest(http.MethodGet, "/me", nil), &auth.Actor{
		ID:    "64b7f0c2a1b2c3d4e5f60718",
		Email: "donor@bloodhub.test",
		Name:  "Dana Donor",
		Role:  "donor",
	})
	body := serve(t, req)

	assert.Equal(t, true, body["isAuthenticated"])
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", body["id"])
	assert.Equal(t, "Dana Donor", body["name"])
	assert.Equal(t, "donor@bloodhub.test", body["email"])
	assert.Equal(t, "donor", body["role"])
}
