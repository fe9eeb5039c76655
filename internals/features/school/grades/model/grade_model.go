package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Terms 1..4 are the bimesters, term 5 is the final recovery exam (RF).
const (
	TermFirst    = 1
	TermRecovery = 5
)

// GradeModel is unique per (student, subject, term).
type GradeModel struct {
	GradeID        uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_id" json:"id"`
	GradeStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_student_subject_term,priority:1;column:grade_student_id" json:"studentId"`
	GradeSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_student_subject_term,priority:2;column:grade_subject_id" json:"subjectId"`
	GradeTerm      int       `gorm:"type:smallint;not null;uniqueIndex:uq_grade_student_subject_term,priority:3;column:grade_term" json:"term"`
	GradeValue     float64   `gorm:"type:numeric(4,2);not null;column:grade_value" json:"value"`

	GradeCreatedAt time.Time `gorm:"autoCreateTime;column:grade_created_at" json:"createdAt"`
	GradeUpdatedAt time.Time `gorm:"autoUpdateTime;column:grade_updated_at" json:"updatedAt"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeID == uuid.Nil {
		m.GradeID = uuid.New()
	}
	return nil
}
