package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/configs"
	database "kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/databases/migrate"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/storage"
	"kompetensi_backend/internals/seeds"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db := database.NewTestDB(t, migrate.Models()...)
	require.NoError(t, seeds.RunAllSeeds(context.Background(), db, "../seeds/data", nil))

	cfg := configs.AppConfig{
		Env:            "test",
		PasswordMinLen: 6,
		JWT:            configs.JWTConfig{Secret: "rahasia-test", TTL: time.Hour, Issuer: "kompetensi"},
		Help:           configs.HelpConfig{MaxFileMB: 1, AllowedDocTypes: []string{"pdf"}},
	}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	SetupRoutes(app, Deps{
		DB:     db,
		Store:  storage.NewMemory("help", "https://cdn.test/help"),
		Config: cfg,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHealthAndRoot(t *testing.T) {
	app := newApp(t)

	status, out := call(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", out["status"])
	assert.Equal(t, "test", out["environment"])

	status, _ = call(t, app, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestPrivateRoutesNeedSession(t *testing.T) {
	app := newApp(t)

	for _, p := range []string{"/api/competencies", "/api/indicators", "/api/subdirectorats", "/api/accounts/me", "/api/help/documents", "/api/help/videos"} {
		status, out := call(t, app, http.MethodGet, p, "", "")
		assert.Equal(t, http.StatusUnauthorized, status, p)
		assert.Equal(t, "UNAUTHORIZED", out["error_code"], p)
	}
}

func TestLoginThenUseSessionThenLogout(t *testing.T) {
	app := newApp(t)

	status, out := call(t, app, http.MethodPost, "/api/auth/login", "", `{"nrp":"00000001","password":"admin12345"}`)
	require.Equal(t, http.StatusOK, status, out)
	token := out["data"].(map[string]any)["access_token"].(string)

	status, out = call(t, app, http.MethodGet, "/api/accounts/me", token, "")
	require.Equal(t, http.StatusOK, status, out)
	me := out["data"].(map[string]any)
	assert.Equal(t, "00000001", me["account_nrp"])

	status, out = call(t, app, http.MethodGet, "/api/competencies/active", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out["data"], 3)

	status, _ = call(t, app, http.MethodGet, "/api/help/documents", token, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/api/auth/logout", token, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/accounts/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// token yang sudah di-blacklist / tanpa token: logout ditolak AuthMiddleware
	status, out = call(t, app, http.MethodPost, "/api/auth/logout", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", out["error_code"])

	status, _ = call(t, app, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newApp(t)

	status, out := call(t, app, http.MethodPost, "/api/auth/login", "", `{"nrp":"00000001","password":"salah"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", out["error_code"])
}
