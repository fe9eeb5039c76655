package route

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sei_backend/internals/configs"
	"sei_backend/internals/constants"
	"sei_backend/internals/databases/dbtest"
	helper "sei_backend/internals/helpers"
	"sei_backend/internals/helpers/fibertest"
	authMiddleware "sei_backend/internals/middlewares/auth"
)

type authBody struct {
	User struct {
		ID    string         `json:"id"`
		Email string         `json:"email"`
		Role  constants.Role `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	prev := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	db := dbtest.Open(t)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	api := app.Group("/api")
	AuthPublicRoutes(api, db)
	AuthRoutes(app.Group("/api", authMiddleware.AuthMiddleware(db)), db)
	return app, db
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func bearer(token string) []string {
	return []string{fiber.HeaderAuthorization, "Bearer " + token}
}

func TestSetupAdmin_OnlyOnce(t *testing.T) {
	app, _ := newAuthApp(t)

	status, raw := fibertest.Do(t, app, http.MethodGet, "/api/auth/setup-status", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[map[string]bool](t, raw)["needsSetup"])

	status, raw = fibertest.Do(t, app, http.MethodPost, "/api/auth/setup-admin",
		map[string]any{"email": " Admin@Escola.BR ", "password": "segredo1", "name": "Admin"})
	require.Equal(t, http.StatusOK, status, string(raw))
	body := decode[authBody](t, raw)
	assert.Equal(t, "admin@escola.br", body.User.Email)
	assert.Equal(t, constants.RoleAdminTI, body.User.Role)
	assert.NotEmpty(t, body.Token)
	assert.NotContains(t, string(raw), "segredo1")
	assert.NotContains(t, string(raw), "password")

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/setup-admin",
		map[string]any{"email": "outro@escola.br", "password": "segredo1", "name": "Outro"})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = fibertest.Do(t, app, http.MethodGet, "/api/auth/setup-status", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[map[string]bool](t, raw)["needsSetup"])
}

func TestLogin_MeLogout(t *testing.T) {
	app, _ := newAuthApp(t)

	status, _ := fibertest.Do(t, app, http.MethodPost, "/api/auth/setup-admin",
		map[string]any{"email": "admin@escola.br", "password": "segredo1", "name": "Admin"})
	require.Equal(t, http.StatusOK, status)

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "admin@escola.br", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "ninguem@escola.br", "password": "segredo1"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := fibertest.Do(t, app, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "  ADMIN@escola.br\t", "password": "segredo1"})
	require.Equal(t, http.StatusOK, status, string(raw))
	token := decode[authBody](t, raw).Token

	status, _ = fibertest.Do(t, app, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw = fibertest.Do(t, app, http.MethodGet, "/api/auth/me", nil, bearer(token)...)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), "admin@escola.br")

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/logout", nil, bearer(token)...)
	require.Equal(t, http.StatusOK, status)

	status, _ = fibertest.Do(t, app, http.MethodGet, "/api/auth/me", nil, bearer(token)...)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegister_RequiresUsersCreate(t *testing.T) {
	app, _ := newAuthApp(t)

	_, raw := fibertest.Do(t, app, http.MethodPost, "/api/auth/setup-admin",
		map[string]any{"email": "admin@escola.br", "password": "segredo1", "name": "Admin"})
	adminToken := decode[authBody](t, raw).Token

	status, raw := fibertest.Do(t, app, http.MethodPost, "/api/auth/register",
		map[string]any{"email": "prof@escola.br", "password": "segredo2", "name": "Prof", "role": "prof"},
		bearer(adminToken)...)
	require.Equal(t, http.StatusCreated, status, string(raw))
	prof := decode[authBody](t, raw)
	assert.Equal(t, constants.RoleProf, prof.User.Role)

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/register",
		map[string]any{"email": " Prof@Escola.br ", "password": "segredo2", "name": "Prof"},
		bearer(adminToken)...)
	assert.Equal(t, http.StatusBadRequest, status, "padded duplicate e-mail is the same account")

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/register",
		map[string]any{"email": "x@escola.br", "password": "segredo2", "name": "X", "role": "reitor"},
		bearer(adminToken)...)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/register",
		map[string]any{"email": "y@escola.br", "password": "segredo2", "name": "Y"},
		bearer(prof.Token)...)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUpdatePassword(t *testing.T) {
	app, _ := newAuthApp(t)

	_, raw := fibertest.Do(t, app, http.MethodPost, "/api/auth/setup-admin",
		map[string]any{"email": "admin@escola.br", "password": "segredo1", "name": "Admin"})
	token := decode[authBody](t, raw).Token

	status, _ := fibertest.Do(t, app, http.MethodPost, "/api/auth/update-password",
		map[string]any{"password": "123"}, bearer(token)...)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/update-password",
		map[string]any{"password": "novasenha"}, bearer(token)...)
	require.Equal(t, http.StatusOK, status)

	status, _ = fibertest.Do(t, app, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "admin@escola.br", "password": "novasenha"})
	assert.Equal(t, http.StatusOK, status)
}
