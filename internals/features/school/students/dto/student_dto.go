package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/constants"
	"sei_backend/internals/features/school/students/model"
	helper "sei_backend/internals/helpers"
)

/* ===============================
   Requests
=================================*/

type CreateStudentRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=150"`
	ClassID            string `json:"classId" validate:"omitempty,uuid"`
	RegistrationNumber string `json:"registrationNumber" validate:"omitempty,max=32"`
	Status             string `json:"status" validate:"omitempty,max=40"`
}

// ToModel parses the status into its stored label ("Cursando" when empty).
// The registration number is left empty when absent; the controller fills it.
func (r CreateStudentRequest) ToModel() (model.StudentModel, error) {
	m := model.StudentModel{
		StudentName:               strings.TrimSpace(r.Name),
		StudentRegistrationNumber: strings.ToUpper(strings.TrimSpace(r.RegistrationNumber)),
		StudentStatus:             constants.EnrollmentAttending.Label(),
	}
	if id := strings.TrimSpace(r.ClassID); id != "" {
		cid := uuid.MustParse(id) // validated
		m.StudentClassID = &cid
	}
	if strings.TrimSpace(r.Status) != "" {
		label, err := statusLabel(r.Status)
		if err != nil {
			return m, err
		}
		m.StudentStatus = label
	}
	return m, nil
}

// UpdateStudentRequest is a partial update. classId "" detaches the student
// from its class.
type UpdateStudentRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=2,max=150"`
	ClassID            *string `json:"classId"`
	RegistrationNumber *string `json:"registrationNumber" validate:"omitempty,min=1,max=32"`
	Status             *string `json:"status" validate:"omitempty,min=1,max=40"`
}

// Apply returns the column updates for a partial update.
func (r UpdateStudentRequest) Apply() (map[string]any, error) {
	up := map[string]any{}
	if r.Name != nil {
		up["student_name"] = strings.TrimSpace(*r.Name)
	}
	if r.ClassID != nil {
		raw := strings.TrimSpace(*r.ClassID)
		if raw == "" {
			up["student_class_id"] = nil
		} else {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, helper.FieldErrors{"classId": {"must be a valid id"}}
			}
			up["student_class_id"] = id
		}
	}
	if r.RegistrationNumber != nil {
		up["student_registration_number"] = strings.ToUpper(strings.TrimSpace(*r.RegistrationNumber))
	}
	if r.Status != nil {
		label, err := statusLabel(*r.Status)
		if err != nil {
			return nil, err
		}
		up["student_status"] = label
	}
	return up, nil
}

func statusLabel(raw string) (string, error) {
	st, ok := constants.ParseEnrollmentStatus(raw)
	if !ok {
		return "", helper.FieldErrors{"status": {"must be one of Cursando, Transferência, Evasão, Outro"}}
	}
	return st.Label(), nil
}

/* ===============================
   Responses
=================================*/

type StudentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	ClassID            *uuid.UUID `json:"classId"`
	RegistrationNumber string     `json:"registrationNumber"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func FromModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		ID:                 m.StudentID,
		Name:               m.StudentName,
		ClassID:            m.StudentClassID,
		RegistrationNumber: m.StudentRegistrationNumber,
		Status:             m.StudentStatus,
		CreatedAt:          m.StudentCreatedAt,
		UpdatedAt:          m.StudentUpdatedAt,
	}
}

func FromModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
