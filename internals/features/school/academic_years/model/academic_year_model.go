package model

import (
	"time"

	"gorm.io/datatypes"
)

// AcademicYearModel holds the grading deadlines of one school year. Every
// date is a calendar day; a nil date means "not configured".
type AcademicYearModel struct {
	AcademicYear         string          `gorm:"type:varchar(4);primaryKey;column:academic_year" json:"year"`
	AcademicYearB1End    *datatypes.Date `gorm:"column:academic_year_b1_end" json:"b1End"`
	AcademicYearB2End    *datatypes.Date `gorm:"column:academic_year_b2_end" json:"b2End"`
	AcademicYearB3End    *datatypes.Date `gorm:"column:academic_year_b3_end" json:"b3End"`
	AcademicYearB4End    *datatypes.Date `gorm:"column:academic_year_b4_end" json:"b4End"`
	AcademicYearRecStart *datatypes.Date `gorm:"column:academic_year_rec_start" json:"recStart"`
	AcademicYearRecEnd   *datatypes.Date `gorm:"column:academic_year_rec_end" json:"recEnd"`

	AcademicYearUpdatedAt time.Time `gorm:"autoUpdateTime;column:academic_year_updated_at" json:"updatedAt"`
}

func (AcademicYearModel) TableName() string { return "academic_year_configs" }
