package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/features/school/subjects/model"
	helper "sei_backend/internals/helpers"
)

const (
	PeriodicityAnnual    = "Anual"
	PeriodicitySemestral = "Semestral"
)

type SubjectRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	SubAreaID   string  `json:"subAreaId" validate:"omitempty,uuid"`
	Periodicity string  `json:"periodicity" validate:"omitempty,oneof=Anual Semestral"`
	Semester    *string `json:"semester" validate:"omitempty,oneof=1 2 Ambos"`
	Year        string  `json:"year" validate:"required,len=4,numeric"`
	Code        *string `json:"code" validate:"omitempty,max=40"`
	Color       *string `json:"color" validate:"omitempty,max=16"`
}

// ToModel checks the periodicity/semester pair: semestral subjects need a
// semester, annual ones drop it.
func (r SubjectRequest) ToModel() (model.SubjectModel, error) {
	m := model.SubjectModel{
		SubjectName:        strings.TrimSpace(r.Name),
		SubjectPeriodicity: r.Periodicity,
		SubjectYear:        r.Year,
		SubjectCode:        trimmedOrNil(r.Code),
		SubjectColor:       trimmedOrNil(r.Color),
	}
	if m.SubjectPeriodicity == "" {
		m.SubjectPeriodicity = PeriodicityAnnual
	}
	if id := strings.TrimSpace(r.SubAreaID); id != "" {
		sid := uuid.MustParse(id)
		m.SubjectSubAreaID = &sid
	}
	if m.SubjectPeriodicity == PeriodicitySemestral {
		if r.Semester == nil {
			return m, helper.FieldErrors{"semester": {"is required for semestral subjects"}}
		}
		s := *r.Semester
		m.SubjectSemester = &s
	}
	return m, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

type SubjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	SubAreaID   *uuid.UUID `json:"subAreaId"`
	Periodicity string     `json:"periodicity"`
	Semester    *string    `json:"semester,omitempty"`
	Year        string     `json:"year"`
	Code        *string    `json:"code,omitempty"`
	Color       *string    `json:"color,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func FromModel(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{
		ID:          m.SubjectID,
		Name:        m.SubjectName,
		SubAreaID:   m.SubjectSubAreaID,
		Periodicity: m.SubjectPeriodicity,
		Semester:    m.SubjectSemester,
		Year:        m.SubjectYear,
		Code:        m.SubjectCode,
		Color:       m.SubjectColor,
		CreatedAt:   m.SubjectCreatedAt,
		UpdatedAt:   m.SubjectUpdatedAt,
	}
}

func FromModels(rows []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
