package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/features/school/classes/model"
)

type CreateClassRequest struct {
	Name           string      `json:"name" validate:"required,min=1,max=120"`
	EnrollmentType string      `json:"enrollmentType" validate:"omitempty,max=60"`
	Year           string      `json:"year" validate:"required,len=4,numeric"`
	Shift          string      `json:"shift" validate:"omitempty,max=30"`
	SubjectIDs     []uuid.UUID `json:"subjectIds"`
}

func (r CreateClassRequest) ToModel() model.ClassModel {
	return model.ClassModel{
		ClassName:           strings.TrimSpace(r.Name),
		ClassEnrollmentType: strings.TrimSpace(r.EnrollmentType),
		ClassYear:           r.Year,
		ClassShift:          strings.TrimSpace(r.Shift),
	}
}

// UpdateClassRequest is partial. A present subjectIds (even empty) replaces
// the whole subject set; an absent one leaves the links alone.
type UpdateClassRequest struct {
	Name           *string      `json:"name" validate:"omitempty,min=1,max=120"`
	EnrollmentType *string      `json:"enrollmentType" validate:"omitempty,max=60"`
	Year           *string      `json:"year" validate:"omitempty,len=4,numeric"`
	Shift          *string      `json:"shift" validate:"omitempty,max=30"`
	SubjectIDs     *[]uuid.UUID `json:"subjectIds"`
}

func (r UpdateClassRequest) Apply() map[string]any {
	up := map[string]any{}
	if r.Name != nil {
		up["class_name"] = strings.TrimSpace(*r.Name)
	}
	if r.EnrollmentType != nil {
		up["class_enrollment_type"] = strings.TrimSpace(*r.EnrollmentType)
	}
	if r.Year != nil {
		up["class_year"] = *r.Year
	}
	if r.Shift != nil {
		up["class_shift"] = strings.TrimSpace(*r.Shift)
	}
	return up
}

type ClassResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	EnrollmentType string      `json:"enrollmentType"`
	Year           string      `json:"year"`
	Shift          string      `json:"shift"`
	SubjectIDs     []uuid.UUID `json:"subjectIds"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func FromModel(m model.ClassModel, subjectIDs []uuid.UUID) ClassResponse {
	if subjectIDs == nil {
		subjectIDs = []uuid.UUID{}
	}
	return ClassResponse{
		ID:             m.ClassID,
		Name:           m.ClassName,
		EnrollmentType: m.ClassEnrollmentType,
		Year:           m.ClassYear,
		Shift:          m.ClassShift,
		SubjectIDs:     subjectIDs,
		CreatedAt:      m.ClassCreatedAt,
		UpdatedAt:      m.ClassUpdatedAt,
	}
}
