package dto

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/features/school/grades/model"
)

type UpsertGradeRequest struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	SubjectID uuid.UUID `json:"subjectId" validate:"required"`
	Term      int       `json:"term" validate:"required,gte=1,lte=5"`
	Value     *float64  `json:"value" validate:"required,gte=0,lte=10"`
}

type UpdateGradeRequest struct {
	Term  *int     `json:"term" validate:"omitempty,gte=1,lte=5"`
	Value *float64 `json:"value" validate:"required,gte=0,lte=10"`
}

// BulkGradeEntry is loosely typed: entries with missing or malformed fields
// are skipped rather than failing the whole batch.
type BulkGradeEntry struct {
	StudentID *string  `json:"studentId"`
	SubjectID *string  `json:"subjectId"`
	Term      *float64 `json:"term"`
	Value     *float64 `json:"value"`
}

// Parse reports ok=false for an entry the batch should skip.
func (e BulkGradeEntry) Parse() (studentID, subjectID uuid.UUID, term int, value float64, ok bool) {
	if e.StudentID == nil || e.SubjectID == nil || e.Term == nil || e.Value == nil {
		return
	}
	var err error
	if studentID, err = uuid.Parse(strings.TrimSpace(*e.StudentID)); err != nil {
		return
	}
	if subjectID, err = uuid.Parse(strings.TrimSpace(*e.SubjectID)); err != nil {
		return
	}
	t := *e.Term
	if t != math.Trunc(t) || t < model.TermFirst || t > model.TermRecovery {
		return
	}
	v := *e.Value
	if math.IsNaN(v) || v < 0 || v > 10 {
		return
	}
	return studentID, subjectID, int(t), v, true
}

type BulkGradesRequest struct {
	Grades []BulkGradeEntry `json:"grades" validate:"required"`
}

type BulkGradesResponse struct {
	Count   int `json:"count"`
	Skipped int `json:"skipped"`
}

type GradeResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"studentId"`
	SubjectID uuid.UUID `json:"subjectId"`
	Term      int       `json:"term"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModel(m model.GradeModel) GradeResponse {
	return GradeResponse{
		ID:        m.GradeID,
		StudentID: m.GradeStudentID,
		SubjectID: m.GradeSubjectID,
		Term:      m.GradeTerm,
		Value:     m.GradeValue,
		UpdatedAt: m.GradeUpdatedAt,
	}
}

func FromModels(rows []model.GradeModel) []GradeResponse {
	out := make([]GradeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
