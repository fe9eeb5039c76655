package route

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/databases/dbtest"
	"sei_backend/internals/features/users/user/dto"
	"sei_backend/internals/features/users/user/model"
	"sei_backend/internals/helpers/fibertest"
)

func seedUser(t *testing.T, db *gorm.DB, email string, role constants.Role) model.UserModel {
	t.Helper()
	u := model.UserModel{Email: email, Password: "hash", Name: "USER " + email, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestUserList_HidesPassword(t *testing.T) {
	db := dbtest.Open(t)
	admin := seedUser(t, db, "admin@escola.br", constants.RoleAdminTI)
	seedUser(t, db, "prof@escola.br", constants.RoleProf)

	app := fibertest.New(constants.RoleAdminTI, admin.ID)
	UserRoutes(app, db)

	status, body := fibertest.Do(t, app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(body), "hash")

	var rows []dto.UserResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodGet, "/users?role=prof", nil, &rows)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 1)
	assert.Equal(t, "Professor", rows[0].RoleLabel)
}

func TestUserList_ForbiddenForProf(t *testing.T) {
	db := dbtest.Open(t)
	app := fibertest.New(constants.RoleProf, uuid.New())
	UserRoutes(app, db)

	status, _ := fibertest.Do(t, app, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUserUpdate_SelfRename(t *testing.T) {
	db := dbtest.Open(t)
	me := seedUser(t, db, "prof@escola.br", constants.RoleProf)
	app := fibertest.New(constants.RoleProf, me.ID)
	UserRoutes(app, db)

	var out dto.UserResponse
	status, env := fibertest.DoEnvelope(t, app, http.MethodPut, "/users/"+me.ID.String(),
		map[string]any{"name": "  joana prado "}, &out)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "JOANA PRADO", out.Name)
	assert.Equal(t, constants.RoleProf, out.Role)

	// promoting yourself is still a role change
	status, _ = fibertest.DoEnvelope(t, app, http.MethodPut, "/users/"+me.ID.String(),
		map[string]any{"role": "admin_ti"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	other := seedUser(t, db, "sec@escola.br", constants.RoleSec)
	status, _ = fibertest.DoEnvelope(t, app, http.MethodPut, "/users/"+other.ID.String(),
		map[string]any{"name": "Outro"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUserUpdate_AdminChangesRole(t *testing.T) {
	db := dbtest.Open(t)
	admin := seedUser(t, db, "admin@escola.br", constants.RoleAdminTI)
	guest := seedUser(t, db, "guest@escola.br", constants.RoleGuest)
	app := fibertest.New(constants.RoleAdminTI, admin.ID)
	UserRoutes(app, db)

	var out dto.UserResponse
	status, _ := fibertest.DoEnvelope(t, app, http.MethodPut, "/users/"+guest.ID.String(),
		map[string]any{"role": "COORD"}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.RoleCoord, out.Role)

	status, env := fibertest.DoEnvelope(t, app, http.MethodPut, "/users/"+guest.ID.String(),
		map[string]any{"role": "diretor"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "role")

	status, _ = fibertest.DoEnvelope(t, app, http.MethodPut, "/users/"+uuid.NewString(),
		map[string]any{"name": "Ninguém"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserDelete(t *testing.T) {
	db := dbtest.Open(t)
	admin := seedUser(t, db, "admin@escola.br", constants.RoleAdminTI)
	guest := seedUser(t, db, "guest@escola.br", constants.RoleGuest)
	app := fibertest.New(constants.RoleAdminTI, admin.ID)
	UserRoutes(app, db)

	status, _ := fibertest.DoEnvelope(t, app, http.MethodDelete, "/users/"+admin.ID.String(), nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodDelete, "/users/"+guest.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodDelete, "/users/"+guest.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
