package route

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sei_backend/internals/constants"
	"sei_backend/internals/databases/dbtest"
	"sei_backend/internals/features/school/grades/dto"
	"sei_backend/internals/features/school/grades/model"
	studentModel "sei_backend/internals/features/school/students/model"
	subjectModel "sei_backend/internals/features/school/subjects/model"
	"sei_backend/internals/helpers/fibertest"
)

type fixture struct {
	db       *gorm.DB
	students []uuid.UUID
	subject  uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	sub := subjectModel.SubjectModel{SubjectName: "Matemática", SubjectYear: "2026"}
	require.NoError(t, db.Create(&sub).Error)
	f := fixture{db: db, subject: sub.SubjectID}
	for i, name := range []string{"Ana", "Bia"} {
		st := studentModel.StudentModel{StudentName: name, StudentRegistrationNumber: fmt.Sprintf("RA2026%06d", 50+i), StudentStatus: "Cursando"}
		require.NoError(t, db.Create(&st).Error)
		f.students = append(f.students, st.StudentID)
	}
	return f
}

func TestGrades_UpsertReplacesValue(t *testing.T) {
	f := newFixture(t)
	app := fibertest.New(constants.RoleProf, uuid.New())
	GradeRoutes(app, f.db)

	body := map[string]any{"studentId": f.students[0], "subjectId": f.subject, "term": 1, "value": 6.5}
	var first dto.GradeResponse
	status, env := fibertest.DoEnvelope(t, app, http.MethodPost, "/grades", body, &first)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, 6.5, first.Value)

	body["value"] = 0
	var second dto.GradeResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodPost, "/grades", body, &second)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 0.0, second.Value)

	var n int64
	require.NoError(t, f.db.Model(&model.GradeModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestGrades_UpsertValidation(t *testing.T) {
	f := newFixture(t)
	app := fibertest.New(constants.RoleCoord, uuid.New())
	GradeRoutes(app, f.db)

	cases := []struct {
		body  map[string]any
		field string
	}{
		{map[string]any{"studentId": f.students[0], "subjectId": f.subject, "term": 6, "value": 5}, "term"},
		{map[string]any{"studentId": f.students[0], "subjectId": f.subject, "term": 1, "value": 10.5}, "value"},
		{map[string]any{"studentId": f.students[0], "subjectId": f.subject, "term": 1}, "value"},
		{map[string]any{"studentId": uuid.New(), "subjectId": f.subject, "term": 1, "value": 5}, "studentId"},
	}
	for _, tc := range cases {
		status, env := fibertest.DoEnvelope(t, app, http.MethodPost, "/grades", tc.body, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status, tc.field)
		assert.Contains(t, env.Errors, tc.field)
	}
}

func TestGrades_BulkSkipsUnusableEntries(t *testing.T) {
	f := newFixture(t)
	app := fibertest.New(constants.RoleProf, uuid.New())
	GradeRoutes(app, f.db)

	ana, bia := f.students[0].String(), f.students[1].String()
	sub := f.subject.String()
	payload := map[string]any{"grades": []map[string]any{
		{"studentId": ana, "subjectId": sub, "term": 1, "value": 7},
		{"studentId": ana, "subjectId": sub, "term": 2, "value": 8},
		{"studentId": bia, "subjectId": sub, "term": 1, "value": 4.25},
		// skipped: no value, bad term, unknown student, malformed id
		{"studentId": bia, "subjectId": sub, "term": 1},
		{"studentId": bia, "subjectId": sub, "term": 9, "value": 5},
		{"studentId": uuid.NewString(), "subjectId": sub, "term": 1, "value": 5},
		{"studentId": "not-an-id", "subjectId": sub, "term": 1, "value": 5},
		// replaces term 2
		{"studentId": ana, "subjectId": sub, "term": 2, "value": 9},
	}}

	var res dto.BulkGradesResponse
	status, env := fibertest.DoEnvelope(t, app, http.MethodPost, "/grades/bulk", payload, &res)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "Grades processed", env.Message)
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, 4, res.Skipped)

	var rows []dto.GradeResponse
	status, _ = fibertest.DoEnvelope(t, app, http.MethodGet, "/grades?studentId="+ana, nil, &rows)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 2)
	assert.Equal(t, 7.0, rows[0].Value)
	assert.Equal(t, 9.0, rows[1].Value)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodGet, "/grades?studentIds="+ana+","+bia+"&term=1", nil, &rows)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, rows, 2)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodPost, "/grades/bulk", map[string]any{"grades": "nope"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGrades_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	app := fibertest.New(constants.RoleCoord, uuid.New())
	GradeRoutes(app, f.db)

	g := model.GradeModel{GradeStudentID: f.students[0], GradeSubjectID: f.subject, GradeTerm: 1, GradeValue: 3}
	require.NoError(t, f.db.Create(&g).Error)

	var got dto.GradeResponse
	status, _ := fibertest.DoEnvelope(t, app, http.MethodPut, "/grades/"+g.GradeID.String(), map[string]any{"value": 5.556}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5.56, got.Value)

	status, _ = fibertest.DoEnvelope(t, app, http.MethodDelete, "/grades/"+g.GradeID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = fibertest.DoEnvelope(t, app, http.MethodGet, "/grades/"+g.GradeID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGrades_ProfessorCannotDelete(t *testing.T) {
	f := newFixture(t)
	app := fibertest.New(constants.RoleProf, uuid.New())
	GradeRoutes(app, f.db)

	status, _ := fibertest.DoEnvelope(t, app, http.MethodDelete, "/grades/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
