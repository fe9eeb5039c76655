package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID          uuid.UUID  `gorm:"type:uuid;primaryKey;column:subject_id" json:"id"`
	SubjectName        string     `gorm:"type:varchar(150);not null;column:subject_name" json:"name"`
	SubjectSubAreaID   *uuid.UUID `gorm:"type:uuid;index;column:subject_sub_area_id" json:"subAreaId"`
	SubjectPeriodicity string     `gorm:"type:varchar(20);not null;default:'Anual';column:subject_periodicity" json:"periodicity"`
	SubjectSemester    *string    `gorm:"type:varchar(10);column:subject_semester" json:"semester,omitempty"`
	SubjectYear        string     `gorm:"type:varchar(4);not null;index;column:subject_year" json:"year"`
	SubjectCode        *string    `gorm:"type:varchar(40);column:subject_code" json:"code,omitempty"`
	SubjectColor       *string    `gorm:"type:varchar(16);column:subject_color" json:"color,omitempty"`

	SubjectCreatedAt time.Time `gorm:"autoCreateTime;column:subject_created_at" json:"createdAt"`
	SubjectUpdatedAt time.Time `gorm:"autoUpdateTime;column:subject_updated_at" json:"updatedAt"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
