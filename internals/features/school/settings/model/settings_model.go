package model

import "time"

// SettingsRowID is the primary key of the single settings row.
const SettingsRowID = 1

const DefaultSchoolName = "Escola"

type SchoolSettingsModel struct {
	SchoolSettingsID         int     `gorm:"primaryKey;autoIncrement:false;column:school_settings_id" json:"-"`
	SchoolSettingsSchoolName string  `gorm:"type:varchar(200);not null;column:school_settings_school_name" json:"schoolName"`
	SchoolSettingsSchoolLogo *string `gorm:"type:text;column:school_settings_school_logo" json:"schoolLogo"`
	SchoolSettingsSystemLogo *string `gorm:"type:text;column:school_settings_system_logo" json:"systemLogo"`

	SchoolSettingsUpdatedAt time.Time `gorm:"autoUpdateTime;column:school_settings_updated_at" json:"updatedAt"`
}

func (SchoolSettingsModel) TableName() string { return "school_settings" }

func DefaultSettings() SchoolSettingsModel {
	return SchoolSettingsModel{
		SchoolSettingsID:         SettingsRowID,
		SchoolSettingsSchoolName: DefaultSchoolName,
	}
}
