package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sei_backend/internals/cache"
	"sei_backend/internals/configs"
	"sei_backend/internals/databases/dbtest"
	helper "sei_backend/internals/helpers"
	"sei_backend/internals/helpers/fibertest"
)

func newApp(t *testing.T) (*fiber.App, *cache.Memory) {
	t.Helper()
	prev := configs.JWTSecret
	configs.JWTSecret = "index-test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	db := dbtest.Open(t)
	mem := cache.NewMemory()
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	SetupRoutes(app, db, mem)
	return app, mem
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, raw := fibertest.Do(t, app, http.MethodPost, "/api/auth/setup-admin",
		map[string]any{"email": "admin@escola.br", "password": "segredo1", "name": "Admin"})
	require.Equal(t, http.StatusOK, status, string(raw))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.Token
}

func TestSetupRoutes_PublicAndPrivate(t *testing.T) {
	app, _ := newApp(t)

	status, _ := fibertest.Do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = fibertest.Do(t, app, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = fibertest.Do(t, app, http.MethodGet, "/api/auth/setup-status", nil)
	assert.Equal(t, http.StatusOK, status)

	for _, path := range []string{"/api/students", "/api/users", "/api/stats/dashboard", "/api/auth/me"} {
		status, _ = fibertest.Do(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	token := adminToken(t, app)
	auth := []string{fiber.HeaderAuthorization, "Bearer " + token}
	for _, path := range []string{"/api/students", "/api/users", "/api/grades", "/api/academic-years", "/api/formations"} {
		status, _ = fibertest.Do(t, app, http.MethodGet, path, nil, auth...)
		assert.Equal(t, http.StatusOK, status, path)
	}
}

func TestSetupRoutes_StatsCacheInvalidatedByWrites(t *testing.T) {
	app, _ := newApp(t)
	auth := []string{fiber.HeaderAuthorization, "Bearer " + adminToken(t, app)}

	get := func() (int, string, fibertest.Envelope) {
		req := httptest.NewRequest(http.MethodGet, "/api/stats/dashboard?year=2026", nil)
		req.Header.Set(auth[0], auth[1])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		var env fibertest.Envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		return resp.StatusCode, resp.Header.Get("X-Cache"), env
	}

	status, raw := fibertest.Do(t, app, http.MethodPost, "/api/classes",
		map[string]any{"name": "9A", "year": "2026"}, auth...)
	require.Equal(t, http.StatusCreated, status, string(raw))
	var envClass fibertest.Envelope
	require.NoError(t, json.Unmarshal(raw, &envClass))
	var class struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envClass.Data, &class))

	status, hit, _ := get()
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "MISS", hit)

	_, hit, _ = get()
	assert.Equal(t, "HIT", hit)

	status, raw = fibertest.Do(t, app, http.MethodPost, "/api/students",
		map[string]any{"name": "Ana Souza", "classId": class.ID}, auth...)
	require.Equal(t, http.StatusCreated, status, string(raw))

	_, hit, env := get()
	assert.Equal(t, "MISS", hit)
	var summary struct {
		TotalStudents int `json:"totalStudents"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.TotalStudents)
}
