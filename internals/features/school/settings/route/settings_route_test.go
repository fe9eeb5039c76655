package route

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sei_backend/internals/constants"
	"sei_backend/internals/databases/dbtest"
	"sei_backend/internals/features/school/settings/dto"
	"sei_backend/internals/features/school/settings/model"
	"sei_backend/internals/helpers/fibertest"
	"sei_backend/internals/helpers/imagex"
)

func TestSettings_DefaultsThenUpdate(t *testing.T) {
	db := dbtest.Open(t)
	app := fibertest.New(constants.RoleAdminTI, uuid.New())
	SettingsPublicRoutes(app, db)
	SettingsRoutes(app, db)

	var got dto.SettingsResponse
	status, _ := fibertest.DoEnvelope(t, app, http.MethodGet, "/settings", nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, model.DefaultSchoolName, got.SchoolName)
	assert.Nil(t, got.SchoolLogo)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodPut, "/settings", map[string]any{"schoolName": " E.E. Monteiro Lobato "}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "E.E. Monteiro Lobato", got.SchoolName)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodPut, "/settings", map[string]any{"systemLogo": "data:image/webp;base64,AAAA"}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "E.E. Monteiro Lobato", got.SchoolName, "partial update keeps the name")
	require.NotNil(t, got.SystemLogo)

	var rows int64
	require.NoError(t, db.Model(&model.SchoolSettingsModel{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSettings_OnlyAdminTIWrites(t *testing.T) {
	db := dbtest.Open(t)
	app := fibertest.New(constants.RoleAdminDir, uuid.New())
	SettingsRoutes(app, db)

	status, _ := fibertest.DoEnvelope(t, app, http.MethodPut, "/settings", map[string]any{"schoolName": "X"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSettings_UploadLogo(t *testing.T) {
	db := dbtest.Open(t)
	app := fibertest.New(constants.RoleAdminTI, uuid.New())
	SettingsRoutes(app, db)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 900, 300))))

	upload := func(kind string, payload []byte) (int, dto.SettingsResponse) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("file", "logo.png")
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/settings/logo?kind="+kind, &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var env struct {
			Data dto.SettingsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
		return resp.StatusCode, env.Data
	}

	status, got := upload("system", img.Bytes())
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, got.SystemLogo)
	assert.True(t, strings.HasPrefix(*got.SystemLogo, imagex.DataURLPrefix))
	assert.Nil(t, got.SchoolLogo)

	status, _ = upload("banner", img.Bytes())
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = upload("school", []byte("definitely not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)
}
