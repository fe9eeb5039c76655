package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sei_backend/internals/features/school/settings/model"
)

// Load returns the stored settings row, or the defaults when none exists.
func Load(ctx context.Context, db *gorm.DB) (model.SchoolSettingsModel, error) {
	var m model.SchoolSettingsModel
	err := db.WithContext(ctx).First(&m, "school_settings_id = ?", model.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultSettings(), nil
	}
	return m, err
}

// Save upserts the single settings row.
func Save(ctx context.Context, db *gorm.DB, m *model.SchoolSettingsModel) error {
	m.SchoolSettingsID = model.SettingsRowID
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "school_settings_id"}},
		UpdateAll: true,
	}).Create(m).Error
}

// Mutate loads, applies fn and saves inside one transaction.
func Mutate(ctx context.Context, db *gorm.DB, fn func(*model.SchoolSettingsModel)) (model.SchoolSettingsModel, error) {
	var out model.SchoolSettingsModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := Load(ctx, tx)
		if err != nil {
			return err
		}
		fn(&m)
		if err := Save(ctx, tx, &m); err != nil {
			return err
		}
		out, err = Load(ctx, tx)
		return err
	})
	return out, err
}
