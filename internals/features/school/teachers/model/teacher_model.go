package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherModel struct {
	TeacherID    uuid.UUID `gorm:"type:uuid;primaryKey;column:teacher_id" json:"id"`
	TeacherName  string    `gorm:"type:varchar(150);not null;column:teacher_name" json:"name"`
	TeacherEmail string    `gorm:"type:varchar(255);not null;uniqueIndex;column:teacher_email" json:"email"`

	TeacherCreatedAt time.Time `gorm:"autoCreateTime;column:teacher_created_at" json:"createdAt"`
	TeacherUpdatedAt time.Time `gorm:"autoUpdateTime;column:teacher_updated_at" json:"updatedAt"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}
