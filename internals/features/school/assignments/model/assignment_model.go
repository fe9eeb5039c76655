package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentModel says which teacher teaches a subject to a class.
type AssignmentModel struct {
	AssignmentID        uuid.UUID `gorm:"type:uuid;primaryKey;column:assignment_id" json:"id"`
	AssignmentTeacherID uuid.UUID `gorm:"type:uuid;not null;index;column:assignment_teacher_id" json:"teacherId"`
	AssignmentSubjectID uuid.UUID `gorm:"type:uuid;not null;index;column:assignment_subject_id" json:"subjectId"`
	AssignmentClassID   uuid.UUID `gorm:"type:uuid;not null;index;column:assignment_class_id" json:"classId"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}
