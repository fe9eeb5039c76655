package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID             uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"id"`
	ClassName           string    `gorm:"type:varchar(120);not null;column:class_name" json:"name"`
	ClassEnrollmentType string    `gorm:"type:varchar(60);column:class_enrollment_type" json:"enrollmentType"`
	ClassYear           string    `gorm:"type:varchar(4);not null;index;column:class_year" json:"year"`
	ClassShift          string    `gorm:"type:varchar(30);column:class_shift" json:"shift"`

	ClassCreatedAt time.Time `gorm:"autoCreateTime;column:class_created_at" json:"createdAt"`
	ClassUpdatedAt time.Time `gorm:"autoUpdateTime;column:class_updated_at" json:"updatedAt"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

// ClassSubjectModel links a class to the subjects taught in it.
type ClassSubjectModel struct {
	ClassSubjectClassID   uuid.UUID `gorm:"type:uuid;primaryKey;column:class_subject_class_id" json:"classId"`
	ClassSubjectSubjectID uuid.UUID `gorm:"type:uuid;primaryKey;index;column:class_subject_subject_id" json:"subjectId"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }
