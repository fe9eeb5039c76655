package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sei_backend/internals/features/school/teachers/model"
)

type CreateTeacherRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=150"`
	Email string `json:"email" validate:"required,email,max=255"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r CreateTeacherRequest) ToModel() model.TeacherModel {
	return model.TeacherModel{
		TeacherName:  strings.TrimSpace(r.Name),
		TeacherEmail: strings.ToLower(strings.TrimSpace(r.Email)),
	}
}

type UpdateTeacherRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=150"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

func (r *UpdateTeacherRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

func (r UpdateTeacherRequest) Apply() map[string]any {
	up := map[string]any{}
	if r.Name != nil {
		up["teacher_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		up["teacher_email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	return up
}

type TeacherResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModel(m model.TeacherModel) TeacherResponse {
	return TeacherResponse{
		ID:        m.TeacherID,
		Name:      m.TeacherName,
		Email:     m.TeacherEmail,
		CreatedAt: m.TeacherCreatedAt,
		UpdatedAt: m.TeacherUpdatedAt,
	}
}

func FromModels(rows []model.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
