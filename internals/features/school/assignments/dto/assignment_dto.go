package dto

import (
	"github.com/google/uuid"

	"sei_backend/internals/features/school/assignments/model"
)

type AssignmentRequest struct {
	TeacherID uuid.UUID `json:"teacherId" validate:"required"`
	SubjectID uuid.UUID `json:"subjectId" validate:"required"`
	ClassID   uuid.UUID `json:"classId" validate:"required"`
}

func (r AssignmentRequest) ToModel() model.AssignmentModel {
	return model.AssignmentModel{
		AssignmentTeacherID: r.TeacherID,
		AssignmentSubjectID: r.SubjectID,
		AssignmentClassID:   r.ClassID,
	}
}

type AssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	TeacherID uuid.UUID `json:"teacherId"`
	SubjectID uuid.UUID `json:"subjectId"`
	ClassID   uuid.UUID `json:"classId"`
}

func FromModel(m model.AssignmentModel) AssignmentResponse {
	return AssignmentResponse{
		ID:        m.AssignmentID,
		TeacherID: m.AssignmentTeacherID,
		SubjectID: m.AssignmentSubjectID,
		ClassID:   m.AssignmentClassID,
	}
}

func FromModels(rows []model.AssignmentModel) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
