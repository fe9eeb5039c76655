package route

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sei_backend/internals/constants"
	"sei_backend/internals/databases/dbtest"
	"sei_backend/internals/features/school/curriculum/dto"
	"sei_backend/internals/helpers/fibertest"
)

func TestCurriculumTree(t *testing.T) {
	db := dbtest.Open(t)
	app := fibertest.New(constants.RoleCoord, uuid.New())
	CurriculumRoutes(app, db)

	var f dto.FormationResponse
	status, _ := fibertest.DoEnvelope(t, app, http.MethodPost, "/formations", map[string]any{"name": "Formação Geral Básica"}, &f)
	require.Equal(t, http.StatusCreated, status)

	var ka dto.KnowledgeAreaResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodPost, "/knowledge-areas",
		map[string]any{"name": "Linguagens", "formationTypeId": f.ID.String()}, &ka)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, f.ID, ka.FormationTypeID)

	status, env := fibertest.DoEnvelope(t, app, http.MethodPost, "/knowledge-areas",
		map[string]any{"name": "Órfã", "formationTypeId": uuid.NewString()}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "formationTypeId")

	var sa dto.SubAreaResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodPost, "/sub-areas",
		map[string]any{"name": "Língua Portuguesa", "knowledgeAreaId": ka.ID.String()}, &sa)
	require.Equal(t, http.StatusCreated, status)

	var list []dto.SubAreaResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodGet, "/sub-areas?knowledgeAreaId="+ka.ID.String(), nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "Língua Portuguesa", list[0].Name)

	// parents with children cannot go
	status, _ = fibertest.DoEnvelope(t, app, http.MethodDelete, "/knowledge-areas/"+ka.ID.String(), nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodDelete, "/sub-areas/"+sa.ID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = fibertest.DoEnvelope(t, app, http.MethodDelete, "/knowledge-areas/"+ka.ID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, status)

	var renamed dto.FormationResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodPut, "/formations/"+f.ID.String(), map[string]any{"name": "FGB"}, &renamed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "FGB", renamed.Name)
}

func TestCurriculum_SecretaryIsReadOnly(t *testing.T) {
	db := dbtest.Open(t)
	app := fibertest.New(constants.RoleSec, uuid.New())
	CurriculumRoutes(app, db)

	status, _ := fibertest.DoEnvelope(t, app, http.MethodPost, "/formations", map[string]any{"name": "X"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodGet, "/formations", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}
