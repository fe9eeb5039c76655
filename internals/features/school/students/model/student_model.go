package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID                 uuid.UUID  `gorm:"type:uuid;primaryKey;column:student_id" json:"id"`
	StudentName               string     `gorm:"type:varchar(150);not null;column:student_name" json:"name"`
	StudentClassID            *uuid.UUID `gorm:"type:uuid;index;column:student_class_id" json:"classId"`
	StudentRegistrationNumber string     `gorm:"type:varchar(32);not null;uniqueIndex;column:student_registration_number" json:"registrationNumber"`

	// Stored as the display label ("Cursando", "Transferência", ...).
	StudentStatus string `gorm:"type:varchar(40);not null;column:student_status" json:"status"`

	StudentCreatedAt time.Time `gorm:"autoCreateTime;column:student_created_at" json:"createdAt"`
	StudentUpdatedAt time.Time `gorm:"autoUpdateTime;column:student_updated_at" json:"updatedAt"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
